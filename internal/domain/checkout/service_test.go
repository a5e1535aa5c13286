package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/shop"
	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Content.CDNBaseURL = "https://cdn.sanity.io/images"
	cfg.Content.ProjectID = "abc123"
	cfg.Content.Dataset = "production"
	cfg.Shop.QuantityMin = 1
	cfg.Shop.QuantityMax = 8
	return cfg
}

func TestBuildLineItems(t *testing.T) {
	svc := &Service{config: testConfig()}

	items := []shop.CartProduct{
		{
			ProductID:   "p1",
			ProductName: "Salmon Feast",
			Image:       "image-deadbeef-600x600-jpg",
			Slug:        "salmon-feast",
			SizeOption:  shop.SizeOption{Size: "2kg", Price: 12.00, Key: "k1"},
			Flavor:      "salmon",
			Quantity:    3,
		},
	}

	lineItems := svc.BuildLineItems(items)
	require.Len(t, lineItems, 1)

	li := lineItems[0]
	assert.Equal(t, int64(1200), *li.PriceData.UnitAmount)
	assert.Equal(t, "usd", *li.PriceData.Currency)
	assert.Equal(t, int64(3), *li.Quantity)

	pd := li.PriceData.ProductData
	assert.Equal(t, "Salmon Feast", *pd.Name)
	require.Len(t, pd.Images, 1)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/deadbeef-600x600.jpg", *pd.Images[0])
	assert.Equal(t, "salmon", pd.Metadata["flavor"])
	assert.Equal(t, "2kg", pd.Metadata["size"])
	assert.Equal(t, "salmon-feast", pd.Metadata["slug"])

	aq := li.AdjustableQuantity
	assert.True(t, *aq.Enabled)
	assert.Equal(t, int64(1), *aq.Minimum)
	assert.Equal(t, int64(8), *aq.Maximum)
}

func TestBuildLineItemsRoundsFractionalCents(t *testing.T) {
	svc := &Service{config: testConfig()}

	lineItems := svc.BuildLineItems([]shop.CartProduct{
		{
			ProductID:  "p2",
			SizeOption: shop.SizeOption{Size: "400g", Price: 4.99},
			Quantity:   1,
		},
	})
	require.Len(t, lineItems, 1)
	assert.Equal(t, int64(499), *lineItems[0].PriceData.UnitAmount)
}

func TestCreateSessionReadsOrderSnapshotOnly(t *testing.T) {
	svc := &Service{config: testConfig()}
	store := localstore.NewMemoryStore()
	ctx := context.Background()

	// A live cart without a saved order snapshot has nothing to check out.
	require.NoError(t, store.Set(ctx, localstore.KeyCart, []byte(`[{"productId":"p1"}]`)))

	_, err := svc.CreateSession(ctx, store, shop.AnonymousSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no items")
}

func TestResolveImageURL(t *testing.T) {
	svc := &Service{config: testConfig()}

	url := svc.resolveImageURL("image-0a1b2c-800x800-jpg")
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/0a1b2c-800x800.jpg", url)
}
