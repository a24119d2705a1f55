package cli

import (
	"context"
	"io"
	"slices"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/services"
)

type estimator interface {
	Handle(ctx context.Context, cmd commands.EstimateDeliveryCommand) (commands.EstimateDeliveryResult, error)
}

// Runner wires parsing, the estimate use case and the report writer.
type Runner struct {
	estimator  estimator
	calculator services.CostCalculator
	maxParcels int
}

func NewRunner(estimator estimator, calculator services.CostCalculator, maxParcels int) *Runner {
	return &Runner{estimator: estimator, calculator: calculator, maxParcels: maxParcels}
}

// Run reads one request from in and writes the report to out.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	input, err := Parse(in, r.maxParcels)
	if err != nil {
		return err
	}

	if input.Fleet == nil {
		return r.costsOnly(out, input)
	}

	if len(input.Parcels) == 0 {
		return writeErrors(out, input.LineErrors)
	}

	cmd, err := commands.NewEstimateDeliveryCommand(input.BaseCost, *input.Fleet, input.Parcels, r.maxParcels)
	if err != nil {
		return err
	}

	result, err := r.estimator.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	return WriteEstimate(out, result, input.LineErrors)
}

func (r *Runner) costsOnly(out io.Writer, input Input) error {
	parcels, skipped := batch.NewParcels(input.Parcels)
	messages := slices.Concat(input.LineErrors, skipped)
	lines := make([]CostLine, 0, len(parcels))

	for _, p := range parcels {
		if err := r.calculator.Apply(p, input.BaseCost); err != nil {
			return err
		}
		lines = append(lines, CostLine{ID: p.ID(), Discount: p.Discount(), TotalCost: p.TotalCost()})
	}

	return WriteCosts(out, lines, messages)
}
