package repositories

import (
	"context"
	"testing"
	"time"

	"stockpulse/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ItemRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        ItemRepository
	itemID      uuid.UUID
	warehouseID uuid.UUID
	context     context.Context
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewItemRepository(mock)
	suite.itemID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.context = context.Background()
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

var itemColumnNames = []string{
	"id", "warehouse_id", "sku", "quantity_available", "quantity_reserved", "quantity_on_order",
	"reorder_level", "unit_cost", "expiry_date", "location", "last_counted_at", "active", "version",
	"created_at", "updated_at",
}

func (suite *ItemRepoTestSuite) itemRow() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(itemColumnNames).AddRow(
		suite.itemID, suite.warehouseID, "SKU-100", 20, 2, 5,
		10, decimal.RequireFromString("4.50"), (*time.Time)(nil), (*string)(nil), (*time.Time)(nil),
		true, int64(3), now, now,
	)
}

func (suite *ItemRepoTestSuite) TestCreate_Success() {
	item := &models.InventoryItem{
		ID:                suite.itemID,
		WarehouseID:       suite.warehouseID,
		SKU:               "SKU-100",
		QuantityAvailable: 20,
		ReorderLevel:      10,
		UnitCost:          decimal.RequireFromString("4.50"),
	}

	suite.mock.ExpectExec(`INSERT INTO inventory_items`).
		WithArgs(item.ID, item.WarehouseID, item.SKU, item.QuantityAvailable,
			item.QuantityReserved, item.QuantityOnOrder, item.ReorderLevel, item.UnitCost,
			item.ExpiryDate, item.Location).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ItemRepoTestSuite) TestGetByID_Success() {
	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM inventory_items\s+WHERE id = \$1 AND active`).
		WithArgs(suite.itemID).
		WillReturnRows(suite.itemRow())

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.itemID, item.ID)
	assert.Equal(suite.T(), "SKU-100", item.SKU)
	assert.Equal(suite.T(), int64(3), item.Version)
}

func (suite *ItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM inventory_items`).
		WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows(itemColumnNames))

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.Nil(suite.T(), item)
	assert.ErrorIs(suite.T(), err, models.ErrItemNotFound)
}

func (suite *ItemRepoTestSuite) TestList_FilteredByWarehouse() {
	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM inventory_items\s+WHERE active AND warehouse_id = \$1`).
		WithArgs(suite.warehouseID).
		WillReturnRows(suite.itemRow())

	items, err := suite.repo.List(suite.context, &suite.warehouseID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), suite.warehouseID, items[0].WarehouseID)
}

func (suite *ItemRepoTestSuite) TestUpdateQuantity_Success() {
	suite.mock.ExpectExec(`UPDATE inventory_items\s+SET quantity_available = \$1, version = version \+ 1`).
		WithArgs(15, suite.itemID, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateQuantity(suite.context, suite.itemID, 15, 3)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestUpdateQuantity_StaleVersion() {
	suite.mock.ExpectExec(`UPDATE inventory_items\s+SET quantity_available = \$1, version = version \+ 1`).
		WithArgs(15, suite.itemID, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	// Disambiguation read finds the item, so the version was stale.
	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM inventory_items\s+WHERE id = \$1 AND active`).
		WithArgs(suite.itemID).
		WillReturnRows(suite.itemRow())

	err := suite.repo.UpdateQuantity(suite.context, suite.itemID, 15, 2)
	assert.ErrorIs(suite.T(), err, models.ErrConcurrentModification)
}

func (suite *ItemRepoTestSuite) TestUpdateQuantity_ItemGone() {
	suite.mock.ExpectExec(`UPDATE inventory_items\s+SET quantity_available = \$1, version = version \+ 1`).
		WithArgs(15, suite.itemID, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectQuery(`(?s)SELECT .+ FROM inventory_items\s+WHERE id = \$1 AND active`).
		WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows(itemColumnNames))

	err := suite.repo.UpdateQuantity(suite.context, suite.itemID, 15, 3)
	assert.ErrorIs(suite.T(), err, models.ErrItemNotFound)
}

func (suite *ItemRepoTestSuite) TestMarkCounted_Success() {
	at := time.Now().UTC()
	suite.mock.ExpectExec(`UPDATE inventory_items\s+SET last_counted_at = \$1`).
		WithArgs(at, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkCounted(suite.context, suite.itemID, at)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestDeactivate_NotFound() {
	suite.mock.ExpectExec(`UPDATE inventory_items\s+SET active = FALSE`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Deactivate(suite.context, suite.itemID)
	assert.ErrorIs(suite.T(), err, models.ErrItemNotFound)
}
