package hashing

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the production work factor (~250 ms on current
// server hardware). Raise it as hardware improves, keeping hashing time in
// the 100–500 ms range.
const DefaultBcryptCost = 12

// BcryptOptions configures a bcrypt hasher.
type BcryptOptions struct {
	// Cost is the logarithmic work factor, valid in
	// [bcrypt.MinCost, bcrypt.MaxCost].
	Cost int
}

func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// Bcrypt hashes passwords with the bcrypt algorithm. The 16-byte random
// salt and the cost are embedded in the output by bcrypt itself (modular
// crypt format, e.g. "$2a$12$...").
type Bcrypt struct {
	cost int
}

func NewBcrypt(opts BcryptOptions) (*Bcrypt, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]",
			ErrInvalidOptions, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Bcrypt{cost: opts.Cost}, nil
}

func (h *Bcrypt) Algorithm() Algorithm { return AlgorithmBcrypt }

func (h *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(encoded), nil
}

func (h *Bcrypt) Verify(password, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}
	// CompareHashAndPassword recomputes with the cost and salt embedded in
	// encoded and compares in constant time.
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

func (h *Bcrypt) NeedsRehash(encoded string) bool {
	cost, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return true
	}
	return cost != h.cost
}
