package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/internal/database"
	"boutique/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db, zerolog.Nop()).Run())
	return db
}

func TestCategoriesSeeded(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	cats, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 20)

	byName, err := repo.NameToID(context.Background())
	require.NoError(t, err)
	assert.Contains(t, byName, "Informatique")
	assert.Contains(t, byName, "Jouets")
}

func TestProductLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	products := NewProductRepo(db)

	maker, err := users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)

	id, err := products.Create(ctx, model.Product{
		Name:        "Clavier mécanique",
		Price:       79.90,
		Description: "switches bleus",
		Image:       "default_product.png",
		Stock:       12,
		CategoryID:  1,
		Maker:       maker,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Clavier mécanique", got.Name)
	assert.InDelta(t, 79.90, got.Price, 1e-9)
	assert.Equal(t, int64(12), got.Stock)

	err = products.UpdateFields(ctx, id, []string{"price", "stock"}, []any{49.90, int64(3)})
	require.NoError(t, err)
	got, err = products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 49.90, got.Price, 1e-9)
	assert.Equal(t, int64(3), got.Stock)

	require.NoError(t, products.Delete(ctx, id))
	err = products.Delete(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = products.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	u := model.User{
		Type:        "acheteur",
		Password:    "hash",
		Email:       "dup@example.com",
		FirstName:   "A",
		LastName:    "B",
		Acceptation: 1,
	}
	_, err := users.Create(ctx, u)
	require.NoError(t, err)

	_, err = users.Create(ctx, u)
	assert.ErrorIs(t, err, ErrEmailExists)

	exists, err := users.EmailExists(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSellerInsertClearsAcceptation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	sellerID, err := users.Create(ctx, model.User{
		Type: "vendeur", Password: "h", Email: "v@example.com",
		FirstName: "V", LastName: "S", Acceptation: 1,
	})
	require.NoError(t, err)
	seller, err := users.GetByID(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, 0, seller.Acceptation, "new sellers start unapproved")

	adminID, err := users.Create(ctx, model.User{
		Type: "admin", Password: "h", Email: "a@example.com",
		FirstName: "A", LastName: "D", Acceptation: 1,
	})
	require.NoError(t, err)
	admin, err := users.GetByID(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.Acceptation)
}

func TestUserDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	id, err := users.Create(ctx, model.User{
		Type: "acheteur", Password: "h", Email: "gone@example.com",
		FirstName: "G", LastName: "O", Acceptation: 1,
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, id))
	require.NoError(t, users.Delete(ctx, id))
	_, err = users.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewCreateAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	products := NewProductRepo(db)
	reviews := NewReviewRepo(db)

	maker, err := users.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	productID, err := products.Create(ctx, model.Product{
		Name: "Lampe", Price: 15, Image: "default_product.png",
		Stock: 2, CategoryID: 1, Maker: maker,
	})
	require.NoError(t, err)

	avisID, err := reviews.Create(ctx, model.Review{
		UserID:      maker,
		ProductID:   productID,
		Commentaire: "très bien",
		Note:        5,
	})
	require.NoError(t, err)
	require.Positive(t, avisID)

	list, err := reviews.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "très bien", list[0].Commentaire)
	assert.Equal(t, 5, list[0].Note)
}

func TestOrderDeleteReportsAffectedRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	orders := NewOrderRepo(db)

	userID, err := users.Create(ctx, model.User{
		Type: "acheteur", Password: "h", Email: "buyer@example.com",
		FirstName: "B", LastName: "Y", Acceptation: 1,
	})
	require.NoError(t, err)
	res, err := db.Exec("INSERT INTO orders (userId, orderDate, total) VALUES (?, ?, ?)",
		userID, "2026-01-15", 42.50)
	require.NoError(t, err)
	orderID, err := res.LastInsertId()
	require.NoError(t, err)

	affected, err := orders.Delete(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Deleting a missing order is not an error, and reports zero rows so
	// callers can tell nothing actually went away.
	affected, err = orders.Delete(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	list, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
