package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/geofront-io/geofront/domain"
	"github.com/geofront-io/geofront/internal/util"
	"github.com/geofront-io/geofront/namesgen"
)

// ServiceRepository implements domain.ServiceStore on MongoDB.
type ServiceRepository struct {
	coll *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{coll: db.Collection(ServicesCollection)}
}

// SaveService registers a service under its base URL and a resolved
// name. URL and name collisions are checked independently; with
// overwrite enabled the colliding record is deleted before the insert,
// otherwise the registration fails without mutating the registry.
func (r *ServiceRepository) SaveService(ctx context.Context, service *domain.Service, overwrite bool) (*domain.Service, error) {
	serviceURL, err := util.BaseURL(service.URL)
	if err != nil {
		return nil, err
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"url": serviceURL})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if !overwrite {
			return nil, domain.ErrServiceRegistered
		}
		if _, err := r.coll.DeleteOne(ctx, bson.M{"url": serviceURL}); err != nil {
			return nil, err
		}
	}

	name := namesgen.SaneName(service.Name)
	if name == "" {
		name = namesgen.RandomName(false)
		if taken, err := r.nameTaken(ctx, name); err != nil {
			return nil, err
		} else if taken {
			name = namesgen.RandomName(true)
		}
	}
	if taken, err := r.nameTaken(ctx, name); err != nil {
		return nil, err
	} else if taken {
		if !overwrite {
			return nil, domain.ErrServiceNameTaken
		}
		if _, err := r.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
			return nil, err
		}
	}

	if _, err := r.coll.InsertOne(ctx, &domain.Service{
		Name:   name,
		URL:    serviceURL,
		Type:   service.Type,
		Public: service.Public,
		Auth:   service.Auth,
	}); err != nil {
		return nil, fmt.Errorf("registering service %q: %w", name, err)
	}
	log.Debug().Ctx(ctx).Str("name", name).Str("url", serviceURL).Msg("service registered")
	return r.FetchByURL(ctx, serviceURL)
}

func (r *ServiceRepository) nameTaken(ctx context.Context, name string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ServiceRepository) DeleteService(ctx context.Context, name string) (bool, error) {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ServiceRepository) FetchByName(ctx context.Context, name string) (*domain.Service, error) {
	var service domain.Service
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) FetchByURL(ctx context.Context, rawURL string) (*domain.Service, error) {
	serviceURL, err := util.BaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	var service domain.Service
	err = r.coll.FindOne(ctx, bson.M{"url": serviceURL}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var services []*domain.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) ClearServices(ctx context.Context) (bool, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return false, err
	}
	return true, nil
}

// IsPublic reports the public flag of the named service. A lookup miss
// propagates ErrServiceNotFound so the caller can fail closed.
func (r *ServiceRepository) IsPublic(ctx context.Context, name string) (bool, error) {
	service, err := r.FetchByName(ctx, name)
	if err != nil {
		return false, err
	}
	return service.Public, nil
}

var _ domain.ServiceStore = (*ServiceRepository)(nil)
