package tx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cashtaborg/libcashtab-go/address"
	"github.com/cashtaborg/libcashtab-go/units"
)

// DefaultSendFloorSats is the smallest amount a single output may carry.
const DefaultSendFloorSats = uint64(546)

// SendValueParser validates user supplied send amounts.
type SendValueParser struct {
	// FloorSats is the dust floor, 0 for DefaultSendFloorSats.
	FloorSats uint64

	// Decimals is the precision of the display unit, 0 for units.CashDecimals.
	Decimals int32
}

// ParseSendValue validates and totals send amounts with the default floor.
// See SendValueParser.Parse.
func ParseSendValue(oneToMany bool, single string, list []string) (decimal.Decimal, error) {
	return SendValueParser{}.Parse(oneToMany, single, list)
}

// Parse returns the display total of a send. A one-to-one send reads
// single; a one-to-many send reads list rows of the form
// "<address>,<value>". Every amount, and the total, must reach the floor.
func (p SendValueParser) Parse(oneToMany bool, single string, list []string) (decimal.Decimal, error) {
	if !oneToMany {
		v, err := p.amount(single)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %w", ErrInvalidSingleSendValue, err)
		}
		if err := p.checkFloor(v); err != nil {
			return decimal.Zero, err
		}
		return v, nil
	}

	dests, err := p.ParseDestinations(list)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range dests {
		total = total.Add(units.SatoshisToXec(int64(d.Sats), p.decimals()))
	}
	if err := p.checkFloor(total); err != nil {
		return decimal.Zero, err
	}
	for _, d := range dests {
		if d.Sats < p.floor() {
			return decimal.Zero, fmt.Errorf("%w: %s receives %d sat, floor is %d", ErrDust, d.Address, d.Sats, p.floor())
		}
	}
	return total, nil
}

// ParseDestinations parses one-to-many rows into destinations.
func (p SendValueParser) ParseDestinations(list []string) ([]Destination, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidDestinationList)
	}
	dests := make([]Destination, 0, len(list))
	var total int64
	for i, row := range list {
		addr, value, ok := strings.Cut(row, ",")
		addr = strings.TrimSpace(addr)
		if !ok || addr == "" {
			return nil, fmt.Errorf("%w: row %d is not <address>,<value>", ErrInvalidDestinationList, i)
		}
		if _, err := address.Decode(addr); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidDestinationList, i, err)
		}
		v, err := p.amount(value)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidDestinationList, i, err)
		}
		sats, err := units.XecToSatoshis(v, p.decimals())
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidDestinationList, i, err)
		}
		if sats > units.MaxSatoshis-total {
			return nil, fmt.Errorf("%w: row %d: total exceeds %d sat", ErrInvalidDestinationList, i, units.MaxSatoshis)
		}
		total += sats
		dests = append(dests, Destination{Address: addr, Sats: uint64(sats)})
	}
	return dests, nil
}

func (p SendValueParser) amount(s string) (decimal.Decimal, error) {
	if err := units.CheckDecimalPlaces(s, int(p.decimals())); err != nil {
		return decimal.Zero, err
	}
	v, err := units.ParseDisplay(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", units.ErrNegativeAmount, s)
	}
	if _, err := units.XecToSatoshis(v, p.decimals()); err != nil {
		return decimal.Zero, err
	}
	return v, nil
}

func (p SendValueParser) checkFloor(total decimal.Decimal) error {
	floor := units.SatoshisToXec(int64(p.floor()), p.decimals())
	if total.LessThan(floor) {
		return fmt.Errorf("%w: %s is below %s", ErrDust, total, floor)
	}
	return nil
}

func (p SendValueParser) floor() uint64 {
	if p.FloorSats == 0 {
		return DefaultSendFloorSats
	}
	return p.FloorSats
}

func (p SendValueParser) decimals() int32 {
	if p.Decimals == 0 {
		return units.CashDecimals
	}
	return p.Decimals
}
