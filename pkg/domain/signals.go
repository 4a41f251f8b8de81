package domain

import "golang.org/x/sys/unix"

const (
	// RefreshSignal asks every block for an immediate update.
	RefreshSignal = unix.SIGUSR1
	// RestartSignal replaces the process image in place. After a fatal
	// error it is the only way out of crash recovery.
	RestartSignal = unix.SIGUSR2
)
