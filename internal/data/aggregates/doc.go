// Package aggregates implements the scheduling write boundaries on GORM.
//
// Every write runs through executeWrite: the body executes in one transaction,
// rule checks read sibling rows under row locks, and a serialization failure
// replays the whole body up to BaseDeps.TxAttempts times. Errors leave the
// package as *domainagg.Error with a stable code. Reads for listings stay on
// the table repos in internal/data/repos.
package aggregates
