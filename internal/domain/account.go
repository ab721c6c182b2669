package domain

import "time"

// Account holds a balance in minor units with an optimistic version counter.
type Account struct {
	ID        string
	UserID    string
	Name      string
	Currency  string
	Balance   int64
	Version   int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks the account can cover amount without going negative.
func (a *Account) ValidateDebit(amount int64) error {
	if a.Balance < amount {
		return &InsufficientFundsError{Available: a.Balance, Required: amount}
	}

	return nil
}

// ApplyDebit returns the balance after debiting amount.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the balance after crediting amount.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
