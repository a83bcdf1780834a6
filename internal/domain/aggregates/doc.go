// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport details and represent the write
// boundaries where scheduling invariants must hold atomically: a shift is only
// committed after it passed every placement rule inside the same transaction
// that performs the write.
package aggregates
