// Package ledger keeps an in-memory token balance per user.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

const (
	DefaultInitialBalance = 100

	detailedQuestionLen = 150
	vagueQuestionLen    = 20
	detailedBonus       = 8
	vaguePenalty        = -3
	topUsers            = 5
)

var ErrInsufficientTokens = errors.New("insufficient tokens")

// Ledger maps user ids to balances. New users start at the initial balance.
type Ledger struct {
	mu       sync.Mutex
	initial  int
	balances map[string]int
}

func New(initial int) *Ledger {
	return &Ledger{initial: initial, balances: make(map[string]int)}
}

// Balance returns the balance of id, opening the account if needed.
func (l *Ledger) Balance(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(id)
}

func (l *Ledger) balanceLocked(id string) int {
	b, ok := l.balances[id]
	if !ok {
		b = l.initial
		l.balances[id] = b
	}
	return b
}

// Apply adds change to the balance of id and returns the new balance.
// A change that would leave the balance negative is rejected.
func (l *Ledger) Apply(id string, change int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.balanceLocked(id)
	next := current + change
	if next < 0 {
		return current, fmt.Errorf("%w: required %d, available %d", ErrInsufficientTokens, -change, current)
	}
	l.balances[id] = next
	return next, nil
}

// AskChange is the token change for one answered question: the base reward,
// a bonus for detailed questions and a penalty for vague ones.
func AskChange(question string, reward int) int {
	n := utf8.RuneCountInString(question)
	switch {
	case n > detailedQuestionLen:
		return reward + detailedBonus
	case n < vagueQuestionLen:
		return reward + vaguePenalty
	default:
		return reward
	}
}

// Account is one user's balance.
type Account struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

// Stats aggregates the ledger.
type Stats struct {
	TotalUsers     int       `json:"total_users"`
	TotalTokens    int       `json:"total_tokens"`
	AverageBalance float64   `json:"average_balance"`
	TopUsers       []Account `json:"top_users"`
}

func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{TopUsers: []Account{}}
	if len(l.balances) == 0 {
		return s
	}
	accounts := make([]Account, 0, len(l.balances))
	for id, b := range l.balances {
		s.TotalTokens += b
		accounts = append(accounts, Account{UserID: id, Balance: b})
	}
	s.TotalUsers = len(l.balances)
	s.AverageBalance = float64(s.TotalTokens) / float64(s.TotalUsers)

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Balance != accounts[j].Balance {
			return accounts[i].Balance > accounts[j].Balance
		}
		return accounts[i].UserID < accounts[j].UserID
	})
	if len(accounts) > topUsers {
		accounts = accounts[:topUsers]
	}
	s.TopUsers = accounts
	return s
}
