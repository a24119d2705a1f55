// Package cli reads the line-oriented delivery format and writes the
// per-parcel report.
//
// Input:
//
//	<base_cost> <parcel_count>
//	<id> <weight_kg> <distance_km> [offer_code]   (parcel_count lines)
//	<vehicle_count> <max_speed> <max_load>         (optional)
//
// Blank lines are ignored. Without the fleet line only costs are reported.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/batch"
	"fleetdelivery/internal/core/domain/model/vehicle"
)

var (
	ErrNoInput         = errors.New("no input lines provided")
	ErrHeaderIsInvalid = errors.New("first line must be '<base_cost> <parcel_count>'")
	ErrMissingParcels  = errors.New("fewer parcel lines than declared")
	ErrFleetIsInvalid  = errors.New("fleet line must be '<vehicle_count> <max_speed> <max_load>'")
	ErrTrailingInput   = errors.New("unexpected lines after the fleet line")
)

// Input is one parsed request. Fleet is nil when the fleet line is absent.
// LineErrors holds messages for parcel lines that could not be read.
type Input struct {
	BaseCost   float64
	Parcels    []batch.ParcelInput
	Fleet      *vehicle.FleetConfig
	LineErrors []string
}

// Parse reads the whole of r. A declared parcel count above maxParcels is
// rejected with commands.ErrTooManyParcels before any parcel line is read;
// a non-positive maxParcels means commands.DefaultMaxParcels.
func Parse(r io.Reader, maxParcels int) (Input, error) {
	lines, err := readLines(r)
	if err != nil {
		return Input{}, err
	}
	if len(lines) == 0 {
		return Input{}, ErrNoInput
	}

	var in Input
	count, err := parseHeader(lines[0], &in)
	if err != nil {
		return Input{}, err
	}
	if maxParcels <= 0 {
		maxParcels = commands.DefaultMaxParcels
	}
	if count > maxParcels {
		return Input{}, fmt.Errorf("%w: declared %d, limit is %d", commands.ErrTooManyParcels, count, maxParcels)
	}

	rest := lines[1:]
	if len(rest) < count {
		return Input{}, fmt.Errorf("%w: want %d, got %d", ErrMissingParcels, count, len(rest))
	}

	for _, line := range rest[:count] {
		p, err := parseParcel(line)
		if err != nil {
			in.LineErrors = append(in.LineErrors, batch.SkipMessage(p.ID, err))
			continue
		}
		in.Parcels = append(in.Parcels, p)
	}

	switch tail := rest[count:]; len(tail) {
	case 0:
	case 1:
		fleet, err := parseFleet(tail[0])
		if err != nil {
			return Input{}, err
		}
		in.Fleet = &fleet
	default:
		return Input{}, ErrTrailingInput
	}

	return in, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func parseHeader(line string, in *Input) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, ErrHeaderIsInvalid
	}

	baseCost, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: base cost %q", ErrHeaderIsInvalid, fields[0])
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return 0, fmt.Errorf("%w: parcel count %q", ErrHeaderIsInvalid, fields[1])
	}

	in.BaseCost = baseCost
	return count, nil
}

// parseParcel returns the identity even on failure so it can be reported.
func parseParcel(line string) (batch.ParcelInput, error) {
	fields := strings.Fields(line)
	p := batch.ParcelInput{ID: fields[0]}
	if len(fields) < 3 || len(fields) > 4 {
		return p, fmt.Errorf("expected '<id> <weight> <distance> [offer]', got %d fields", len(fields))
	}

	var err error
	if p.Weight, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return p, fmt.Errorf("weight %q is not a number", fields[1])
	}
	if p.Distance, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return p, fmt.Errorf("distance %q is not a number", fields[2])
	}
	if len(fields) == 4 {
		p.OfferCode = fields[3]
	}
	return p, nil
}

func parseFleet(line string) (vehicle.FleetConfig, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return vehicle.FleetConfig{}, ErrFleetIsInvalid
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return vehicle.FleetConfig{}, fmt.Errorf("%w: vehicle count %q", ErrFleetIsInvalid, fields[0])
	}
	speed, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return vehicle.FleetConfig{}, fmt.Errorf("%w: max speed %q", ErrFleetIsInvalid, fields[1])
	}
	load, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return vehicle.FleetConfig{}, fmt.Errorf("%w: max load %q", ErrFleetIsInvalid, fields[2])
	}

	return vehicle.NewFleetConfig(count, load, speed)
}
