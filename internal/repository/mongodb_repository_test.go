package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	// Get connection string
	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	err = CreateIndexes(ctx, db)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func seedCart(t *testing.T, repo CartRepository, owner string) *domain.Cart {
	cart := &domain.Cart{
		Owner: owner,
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2, DiscountPercent: 10, LineTotal: 18},
		},
		TotalItemCount: 2,
		TotalPrice:     18,
	}
	_, err := repo.UpsertCart(context.Background(), cart)
	require.NoError(t, err)
	return cart
}

func TestGetCart_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)

	cart, err := repo.GetCart(context.Background(), "nonexistent@petverse.io")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestUpsertCart_InsertsThenReplaces(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)
	ctx := context.Background()

	id, err := repo.UpsertCart(ctx, &domain.Cart{Owner: "a@petverse.io", TotalPrice: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	id2, err := repo.UpsertCart(ctx, &domain.Cart{
		Owner: "a@petverse.io",
		Items: []domain.CartItem{{ProductID: "p9", Quantity: 1, LineTotal: 9}},
		// stored as given, not recomputed
		TotalItemCount: 5,
		TotalPrice:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	cart, err := repo.GetCart(ctx, "a@petverse.io")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.TotalItemCount)
	assert.Equal(t, 1.0, cart.TotalPrice)
	assert.Equal(t, int64(2), cart.Version)
}

func TestSaveCart_AdvancesVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)
	ctx := context.Background()
	seedCart(t, repo, "b@petverse.io")

	cart, err := repo.GetCart(ctx, "b@petverse.io")
	require.NoError(t, err)
	require.NoError(t, cart.IncreaseQuantity("p1", time.Now()))

	err = repo.SaveCart(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cart.Version)

	stored, err := repo.GetCart(ctx, "b@petverse.io")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Items[0].Quantity)
	assert.Equal(t, 27.0, stored.Items[0].LineTotal)
	assert.Equal(t, 27.0, stored.TotalPrice)
	assert.Equal(t, cart.ID, stored.ID)
}

func TestSaveCart_StaleVersionConflicts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)
	ctx := context.Background()
	seedCart(t, repo, "c@petverse.io")

	first, err := repo.GetCart(ctx, "c@petverse.io")
	require.NoError(t, err)
	second, err := repo.GetCart(ctx, "c@petverse.io")
	require.NoError(t, err)

	require.NoError(t, first.IncreaseQuantity("p1", time.Now()))
	require.NoError(t, repo.SaveCart(ctx, first))

	second.RemoveItem("p1", time.Now())
	err = repo.SaveCart(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	stored, err := repo.GetCart(ctx, "c@petverse.io")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
}

func TestSaveCart_LegacyDocumentWithoutVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)
	ctx := context.Background()

	_, err := db.Collection(CartsCollection).InsertOne(ctx, bson.M{
		"email":      "legacy@petverse.io",
		"cartItems":  bson.A{bson.M{"productId": "p1", "quantity": 1, "price": 12.5}},
		"totalItems": 1,
		"totalPrice": 12.5,
		"updatedAt":  time.Now(),
	})
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, "legacy@petverse.io")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cart.Version)

	require.NoError(t, cart.IncreaseQuantity("p1", time.Now()))
	require.NoError(t, repo.SaveCart(ctx, cart))
	assert.Equal(t, int64(1), cart.Version)
}

func TestClearCart(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)
	ctx := context.Background()
	seedCart(t, repo, "d@petverse.io")

	cart, err := repo.ClearCart(ctx, "d@petverse.io", time.Now())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItemCount)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// document is kept
	_, err = repo.GetCart(ctx, "d@petverse.io")
	assert.NoError(t, err)

	_, err = repo.ClearCart(ctx, "missing@petverse.io", time.Now())
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestThreadLikes(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewThreadRepository(db)
	ctx := context.Background()

	id, err := repo.CreateThread(ctx, &domain.Thread{
		PostTitle:       "Best food for puppies?",
		PostDescription: "Looking for advice",
		AuthorEmail:     "author@petverse.io",
		CreatedAt:       time.Now(),
	})
	require.NoError(t, err)

	changed, err := repo.SetLike(ctx, id, "fan@petverse.io", true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.SetLike(ctx, id, "fan@petverse.io", true)
	require.NoError(t, err)
	assert.False(t, changed)

	thread, err := repo.GetThread(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, thread.LikesCount)
	assert.True(t, thread.HasLiked("fan@petverse.io"))

	changed, err = repo.SetLike(ctx, id, "fan@petverse.io", false)
	require.NoError(t, err)
	assert.True(t, changed)

	thread, err = repo.GetThread(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, thread.LikesCount)
	assert.Empty(t, thread.LikedBy)
}

func TestAppointments_Lifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewAppointmentRepository(db, domain.AppointmentKindGrooming)
	ctx := context.Background()

	id, err := repo.CreateAppointment(ctx, &domain.Appointment{
		Kind:      domain.AppointmentKindGrooming,
		PetName:   "Rex",
		Status:    domain.AppointmentStatusPending,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	modified, err := repo.UpdateStatus(ctx, id, domain.AppointmentStatusConfirmed, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	list, err := repo.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.AppointmentStatusConfirmed, list[0].Status)

	require.NoError(t, repo.DeleteAppointment(ctx, id))
	assert.ErrorIs(t, repo.DeleteAppointment(ctx, id), ErrAppointmentNotFound)
	assert.ErrorIs(t, repo.DeleteAppointment(ctx, "not-an-id"), ErrInvalidID)
}

func TestContextCancellation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewMongoRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond) // Ensure context is cancelled

	_, err := repo.GetCart(ctx, "user123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}
