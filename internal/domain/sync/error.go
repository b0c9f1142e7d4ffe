package sync

import "errors"

var (
	ErrPassFailed  = errors.New("sync pass failed")
	ErrInvalidSign = errors.New("inventory delta sign must be -1 or +1")

	// ErrRemotePending локальный остаток уже изменен, в Siigo нет.
	// Повторять событие нельзя, нужен проход синхронизации остатков.
	ErrRemotePending = errors.New("local stock applied, remote update pending")
)
