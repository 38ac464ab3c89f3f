package services

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/Fabihno/automated-quotation/storage"
)

const maxGenerateAttempts = 1000

// ErrGenerationExhausted is returned when no free quotation number was found
// within the attempt budget.
var ErrGenerationExhausted = errors.New("quotation number generation exhausted")

// NumberGenerator assigns quotation numbers that are unique within one
// representative's directory.
type NumberGenerator struct {
	store storage.QuotationStore
	rnd   *rand.Rand
}

func NewNumberGenerator(store storage.QuotationStore) *NumberGenerator {
	return &NumberGenerator{
		store: store,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate draws a random quotation number and claims the final artifact
// path <no>_<safeClient>.pdf inside repDir. The exclusive create is the
// uniqueness gate; a taken name is the only retry trigger. Each retry adds
// counter*10000 to a fresh draw so the candidate space strictly grows.
// Returns the quotation number and the claimed path relative to the root.
func (g *NumberGenerator) Generate(repDir string, safeClient string) (string, string, error) {
	counter := 0
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		n := g.rnd.Intn(9999) + 1 + counter*10000
		// three-digit pad; draws above 999 render at natural width
		quotationNo := fmt.Sprintf("Q-%03d", n)
		if g.store.NumberTaken(repDir, quotationNo) {
			counter++
			continue
		}
		relPath := filepath.Join(repDir, quotationNo+"_"+safeClient+".pdf")
		err := g.store.Claim(relPath)
		if err == nil {
			return quotationNo, relPath, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		counter++
	}
	return "", "", ErrGenerationExhausted
}
