// Package models defines the core domain models for CommunityCash.
//
// A Community groups members who share a balance-sharing arrangement.
// Each Member belongs to exactly one community and carries a default
// contribution percentage: the fraction of an income amount counted
// toward the shared balance. Income and Expense records are owned by a
// single member; Transaction is the merged read-side view spanning both.
//
// Monetary amounts use decimal.Decimal throughout so balance math never
// runs through binary floats. Dates are stored as "YYYY-MM-DD" strings,
// which sort chronologically and match the wire format verbatim.
package models
