package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries
type TransactionFilters struct {
	AccountID  *uuid.UUID
	CategoryID string
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}
