package domain

import "errors"

// ErrOutOfStock is returned by the inventory ledger when a decrement
// would take a counter below zero. The decrement is rejected, never
// clamped.
var ErrOutOfStock = errors.New("out of stock")
