package sections

import (
	"math"
	"time"
)

// Rate specifies a repeating event: a period with optional boundary
// synchronisation, phase offset, and immediate-start flag. The sibling
// options opt.period, opt.sync, opt.offset, and opt.at_start are a
// naming convention resolved independently, not an enforced schema.
type Rate struct {
	Period  time.Duration
	Sync    bool
	Offset  time.Duration
	AtStart bool
}

// NextTime returns how long to wait from now until the next deadline.
// Synchronised rates align to period boundaries shifted by Offset;
// unsynchronised rates simply wait one period.
func (r Rate) NextTime(now time.Time) time.Duration {
	period := r.Period.Seconds()
	if !r.Sync || period <= 0 {
		return r.Period
	}
	timestamp := float64(now.Add(-r.Offset).UnixNano()) / float64(time.Second)
	wait := period - math.Mod(timestamp, period)
	return time.Duration(wait * float64(time.Second))
}

// Rate folds option and its sync/offset/at_start siblings into a Rate.
// The period reads option itself (a duration; bare numbers are seconds)
// or option.period when present. Missing both without a fallback fails
// with *MissingOptionError.
func (v *View) Rate(option string, fallback ...Rate) (Rate, error) {
	key := normalizeOption(option)
	var base Rate
	found := len(fallback) > 0
	if found {
		base = fallback[0]
	}

	if d, err := v.Duration(key); err == nil {
		base.Period = d
		found = true
	} else if !isAbsence(err) {
		return Rate{}, err
	}
	if d, err := v.Duration(key + ".period"); err == nil {
		base.Period = d
		found = true
	} else if !isAbsence(err) {
		return Rate{}, err
	}
	if !found {
		return Rate{}, &MissingOptionError{Section: v.name, Option: key}
	}

	sync, err := v.Bool(key+".sync", base.Sync)
	if err != nil {
		return Rate{}, err
	}
	offset, err := v.Duration(key+".offset", base.Offset)
	if err != nil {
		return Rate{}, err
	}
	atStart, err := v.Bool(key+".at_start", base.AtStart)
	if err != nil {
		return Rate{}, err
	}

	return Rate{Period: base.Period, Sync: sync, Offset: offset, AtStart: atStart}, nil
}
