package model

// ExpenseCategory groups expenses. Cannot be deleted while referenced.
type ExpenseCategory struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Descr string `gorm:"type:varchar(200);uniqueIndex;not null" json:"descr"`
}

func (ExpenseCategory) TableName() string { return "expenses_categories" }

// IncomeCategory groups incomes. Cannot be deleted while referenced.
type IncomeCategory struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Descr string `gorm:"type:varchar(200);uniqueIndex;not null" json:"descr"`
}

func (IncomeCategory) TableName() string { return "incomes_categories" }
