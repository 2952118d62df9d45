package expenses

import (
	"errors"
	"testing"
	"time"

	"masroufi/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the store against a real in-memory database
type StoreTestSuite struct {
	suite.Suite
	db    *storage.DB
	store *Store
	now   time.Time
}

func (suite *StoreTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.now = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	suite.store = NewStore(db, WithClock(func() time.Time { return suite.now }))
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *StoreTestSuite) TestLoadAllEmpty() {
	list := suite.store.LoadAll()
	assert.NotNil(suite.T(), list)
	assert.Empty(suite.T(), list)
}

func (suite *StoreTestSuite) TestAppendThenLoadAll() {
	item, err := suite.store.Append("12.5", "food", "lunch")
	require.NoError(suite.T(), err)

	list := suite.store.LoadAll()
	require.Len(suite.T(), list, 1)

	head := list[0]
	assert.Equal(suite.T(), item.ID, head.ID)
	assert.True(suite.T(), decimal.RequireFromString("12.5").Equal(head.Amount))
	assert.Equal(suite.T(), "food", head.Category)
	assert.Equal(suite.T(), "lunch", head.Note)
	assert.Equal(suite.T(), "2026-10-15", head.Date)
	assert.True(suite.T(), suite.now.Equal(head.CreatedAt))
}

func (suite *StoreTestSuite) TestAppendStoresNumericAmount() {
	_, err := suite.store.Append("12.5", "food", "")
	require.NoError(suite.T(), err)

	blob, ok, err := suite.db.GetItem(StorageKey)
	require.NoError(suite.T(), err)
	require.True(suite.T(), ok)
	assert.Contains(suite.T(), blob, `"amount":12.5,`)
	assert.NotContains(suite.T(), blob, `"amount":"`)
}

func (suite *StoreTestSuite) TestAppendInsertsAtHead() {
	_, err := suite.store.Append("100", "food", "")
	require.NoError(suite.T(), err)

	suite.now = suite.now.Add(time.Minute)
	_, err = suite.store.Append("30", "transport", "bus")
	require.NoError(suite.T(), err)

	list := suite.store.LoadAll()
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), "transport", list[0].Category)
	assert.Equal(suite.T(), "food", list[1].Category)
	assert.Equal(suite.T(), "", list[1].Note)
}

func (suite *StoreTestSuite) TestAppendGeneratesUniqueIDs() {
	a, err := suite.store.Append("1", "food", "")
	require.NoError(suite.T(), err)
	b, err := suite.store.Append("1", "food", "")
	require.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), a.ID, b.ID)
	assert.Regexp(suite.T(), `^\d+_[0-9a-f]{12}$`, a.ID)
}

func (suite *StoreTestSuite) TestLoadAllIsIdempotent() {
	_, err := suite.store.Append("5", "food", "tea")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), suite.store.LoadAll(), suite.store.LoadAll())
}

func (suite *StoreTestSuite) TestLoadAllCorruptData() {
	require.NoError(suite.T(), suite.db.SetItem(StorageKey, "{not json"))

	list := suite.store.LoadAll()
	assert.NotNil(suite.T(), list)
	assert.Empty(suite.T(), list)
}

func (suite *StoreTestSuite) TestAppendOverCorruptDataStartsFresh() {
	require.NoError(suite.T(), suite.db.SetItem(StorageKey, `{"id":1}`))

	_, err := suite.store.Append("7", "other", "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.store.LoadAll(), 1)
}

func (suite *StoreTestSuite) TestLoadAllReadsNumericAmounts() {
	// Blobs written by the browser version store amounts as JSON numbers
	blob := `[{"id":"1_a","amount":2500,"category":"food","note":"","date":"2026-10-15","createdAt":"2026-10-15T09:00:00.000Z"}]`
	require.NoError(suite.T(), suite.db.SetItem(StorageKey, blob))

	list := suite.store.LoadAll()
	require.Len(suite.T(), list, 1)
	assert.True(suite.T(), decimal.NewFromInt(2500).Equal(list[0].Amount))
}

func (suite *StoreTestSuite) TestAppendRejectsInvalidInput() {
	tests := []struct {
		amount   string
		category string
		want     error
	}{
		{"0", "food", ErrInvalidAmount},
		{"", "food", ErrInvalidAmount},
		{"-3", "food", ErrInvalidAmount},
		{"abc", "food", ErrInvalidAmount},
		{"10", "  ", ErrEmptyCategory},
	}

	for _, tt := range tests {
		_, err := suite.store.Append(tt.amount, tt.category, "")
		assert.ErrorIs(suite.T(), err, tt.want, "amount %q category %q", tt.amount, tt.category)
	}
	assert.Empty(suite.T(), suite.store.LoadAll(), "no record may be created for invalid input")
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type failingStorage struct {
	getErr error
	setErr error
}

func (f failingStorage) GetItem(string) (string, bool, error) { return "", false, f.getErr }
func (f failingStorage) SetItem(string, string) error         { return f.setErr }

func TestLoadAll_ReadErrorRecovered(t *testing.T) {
	store := NewStore(failingStorage{getErr: errors.New("disk gone")})
	assert.Empty(t, store.LoadAll())
}

func TestAppend_WriteErrorPropagates(t *testing.T) {
	quota := errors.New("quota exceeded")
	store := NewStore(failingStorage{setErr: quota})

	_, err := store.Append("10", "food", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, quota)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 1500.75 ")
	require.NoError(t, err)
	assert.Equal(t, "1500.75", d.String())

	_, err = ParseAmount("0.00")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
