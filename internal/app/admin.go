package app

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

var (
	ErrAdminDenied    = errors.New("admin: wrong password")
	ErrAdminThrottled = errors.New("admin: too many attempts, try again later")
)

// AdminGate guards the reporting code path with a bcrypt password hash and
// throttles unlock attempts. It is safe for concurrent use.
type AdminGate struct {
	hash    []byte
	rl      *rate.Limiter
	compare func(hash, password []byte) error

	mu       sync.Mutex
	verified *[sha256.Size]byte // digest of the last password bcrypt accepted
}

func NewAdminGate(hash []byte, attemptsPerMinute int) *AdminGate {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = 3
	}
	return &AdminGate{
		hash:    hash,
		rl:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(attemptsPerMinute)), attemptsPerMinute),
		compare: bcrypt.CompareHashAndPassword,
	}
}

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Unlock checks password against the hash. Once bcrypt has accepted a
// password, repeats of it are matched against its SHA-256 digest instead.
// Only failed attempts spend the limiter budget; once it is exhausted every
// unverified attempt is refused until it refills.
func (g *AdminGate) Unlock(password string) error {
	sum := sha256.Sum256([]byte(password))
	if g.known(sum) {
		return nil
	}
	if g.rl.Tokens() < 1 {
		log.Warn().Msg("admin unlock throttled")
		return ErrAdminThrottled
	}
	if err := g.compare(g.hash, []byte(password)); err != nil {
		g.rl.Allow()
		log.Warn().Msg("admin unlock denied")
		return ErrAdminDenied
	}
	g.mu.Lock()
	g.verified = &sum
	g.mu.Unlock()
	log.Info().Msg("admin unlocked")
	return nil
}

func (g *AdminGate) known(sum [sha256.Size]byte) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verified != nil && subtle.ConstantTimeCompare(g.verified[:], sum[:]) == 1
}
