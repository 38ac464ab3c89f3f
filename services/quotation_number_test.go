package services

import (
	"io/fs"
	"regexp"
	"testing"
	"time"

	"github.com/Fabihno/automated-quotation/models"
	"github.com/Fabihno/automated-quotation/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesUniqueNumbers(t *testing.T) {
	store := storage.NewFSStore(t.TempDir())
	require.NoError(t, store.EnsureDir("Jane_Doe"))
	gen := NewNumberGenerator(store)

	format := regexp.MustCompile(`^Q-\d{3,}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		no, relPath, err := gen.Generate("Jane_Doe", "Acme")
		require.NoError(t, err)
		assert.Regexp(t, format, no)
		assert.False(t, seen[no], "quotation number %s assigned twice", no)
		seen[no] = true
		assert.True(t, store.Exists(relPath))
	}
}

func TestGenerateRedrawsWhenNumberTaken(t *testing.T) {
	store := storage.NewFSStore(t.TempDir())
	require.NoError(t, store.EnsureDir("Jane_Doe"))
	gen := NewNumberGenerator(store)

	no1, _, err := gen.Generate("Jane_Doe", "Acme")
	require.NoError(t, err)
	no2, _, err := gen.Generate("Jane_Doe", "Beta")
	require.NoError(t, err)
	assert.NotEqual(t, no1, no2)
}

// fullStore claims every name as already taken.
type fullStore struct{}

func (fullStore) List(string, string) ([]models.QuotationFile, error) { return nil, nil }
func (fullStore) Claim(string) error                                  { return fs.ErrExist }
func (fullStore) Put(string, []byte) error                            { return nil }
func (fullStore) Exists(string) bool                                  { return true }
func (fullStore) NumberTaken(string, string) bool                     { return false }
func (fullStore) Remove(string) error                                 { return nil }
func (fullStore) Abs(rel string) (string, error)                      { return rel, nil }
func (fullStore) EnsureDir(string) error                              { return nil }
func (fullStore) WritableDir(string) bool                             { return true }
func (fullStore) Root() string                                        { return "" }
func (fullStore) SweepTemp(time.Duration) int                         { return 0 }

func TestGenerateExhaustion(t *testing.T) {
	gen := NewNumberGenerator(fullStore{})

	_, _, err := gen.Generate("Jane_Doe", "Acme")
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}
