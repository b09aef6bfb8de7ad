package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/geofront-io/geofront/domain"
	"github.com/geofront-io/geofront/mongodb/testutil"
)

func TestServiceRepositoryIntegration(t *testing.T) {
	db, cleanup := testutil.SetupTestMongoDB(t, "geofront_services")
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	repo := NewServiceRepository(db)

	countServices := func() int64 {
		n, err := db.Collection(ServicesCollection).CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		return n
	}

	t.Run("url is stored in base form", func(t *testing.T) {
		saved, err := repo.SaveService(ctx, &domain.Service{
			URL: "http://host/wps?foo=1", Type: "WPS",
		}, false)
		require.NoError(t, err)
		assert.Equal(t, "http://host/wps", saved.URL)
		assert.NotEmpty(t, saved.Name, "a name is generated when none was supplied")
	})

	t.Run("url collision without overwrite fails and leaves the registry unchanged", func(t *testing.T) {
		before := countServices()
		_, err := repo.SaveService(ctx, &domain.Service{
			URL: "http://host/wps?foo=2", Type: "WPS",
		}, false)
		assert.ErrorIs(t, err, domain.ErrServiceRegistered)
		assert.Equal(t, before, countServices())
	})

	t.Run("name collision without overwrite fails", func(t *testing.T) {
		first, err := repo.SaveService(ctx, &domain.Service{
			Name: "emu", URL: "http://host-a/wps",
		}, false)
		require.NoError(t, err)
		require.Equal(t, "emu", first.Name)

		before := countServices()
		_, err = repo.SaveService(ctx, &domain.Service{
			Name: "emu", URL: "http://host-b/wps",
		}, false)
		assert.ErrorIs(t, err, domain.ErrServiceNameTaken)
		assert.Equal(t, before, countServices())
	})

	t.Run("overwrite replaces the colliding record", func(t *testing.T) {
		_, err := repo.SaveService(ctx, &domain.Service{
			Name: "hummingbird", URL: "http://old-host/wps",
		}, false)
		require.NoError(t, err)

		saved, err := repo.SaveService(ctx, &domain.Service{
			Name: "hummingbird", URL: "http://new-host/wps", Public: true,
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "hummingbird", saved.Name)
		assert.Equal(t, "http://new-host/wps", saved.URL)

		_, err = repo.FetchByURL(ctx, "http://old-host/wps")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	})

	t.Run("fetch by url normalizes its argument", func(t *testing.T) {
		svc, err := repo.FetchByURL(ctx, "http://new-host/wps?request=GetCapabilities")
		require.NoError(t, err)
		assert.Equal(t, "hummingbird", svc.Name)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		services, err := repo.ListServices(ctx)
		require.NoError(t, err)
		for i := 1; i < len(services); i++ {
			assert.LessOrEqual(t, services[i-1].Name, services[i].Name)
		}
	})

	t.Run("is public", func(t *testing.T) {
		public, err := repo.IsPublic(ctx, "hummingbird")
		require.NoError(t, err)
		assert.True(t, public)

		_, err = repo.IsPublic(ctx, "no-such-service")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	})

	t.Run("delete and clear", func(t *testing.T) {
		ok, err := repo.DeleteService(ctx, "hummingbird")
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = repo.FetchByName(ctx, "hummingbird")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)

		ok, err = repo.ClearServices(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, countServices())
	})
}
