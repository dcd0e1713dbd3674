package models

import "github.com/shopspring/decimal"

// Account is a row of the account table. The transfer core only ever asks
// whether one exists.
type Account struct {
	AccountID string `gorm:"column:account_id;primaryKey;type:varchar(255)"`
}

func (Account) TableName() string { return "account" }

// AccountBalance is the balance of one account in one currency.
// (AccountID, Currency) is unique.
type AccountBalance struct {
	AccountID string          `gorm:"column:account_id;primaryKey;type:varchar(255)"`
	Currency  string          `gorm:"column:currency;primaryKey;type:varchar(255)"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(65,10)"`
}

func (AccountBalance) TableName() string { return "account_balance" }
