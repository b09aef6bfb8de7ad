package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/geofront-io/geofront/domain"
)

// TokenRepository implements domain.TokenStore on MongoDB.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(TokensCollection)}
}

func (r *TokenRepository) SaveToken(ctx context.Context, token *domain.AccessToken) error {
	_, err := r.coll.InsertOne(ctx, token)
	return err
}

func (r *TokenRepository) DeleteToken(ctx context.Context, token string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"token": token})
	return err
}

func (r *TokenRepository) FetchByToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	var access domain.AccessToken
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&access)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *TokenRepository) ClearTokens(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}

var _ domain.TokenStore = (*TokenRepository)(nil)
