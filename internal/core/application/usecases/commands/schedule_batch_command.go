package commands

import (
	"errors"

	"fleetdelivery/internal/pkg/guard"
)

var ErrScheduleBatchCommandIsNotConstructed = errors.New(
	"ScheduleBatchCommand must be created via NewScheduleBatchCommand constructor",
)

// ScheduleBatchCommand asks for the oldest queued batch to be priced and
// scheduled. It carries no parameters.
type ScheduleBatchCommand struct {
	guard guard.ConstructorGuard
}

func NewScheduleBatchCommand() ScheduleBatchCommand {
	return ScheduleBatchCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ScheduleBatchCommand) Validate() error {
	return c.guard.Validate(ErrScheduleBatchCommandIsNotConstructed)
}
