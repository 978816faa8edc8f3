package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const earthRadiusKm = 6371.0

// FeeSchedule is the platform commission and the courier fare table.
// Fares are minor units.
type FeeSchedule struct {
	PlatformRate decimal.Decimal
	BaseFare     int64
	PerBlockFare int64
	BlockKm      float64
	IncludedKm   float64
}

// CourierFee prices a trip: the base fare covers IncludedKm, each started
// block beyond it adds PerBlockFare.
func (f FeeSchedule) CourierFee(distanceKm float64) int64 {
	if distanceKm <= f.IncludedKm || f.BlockKm <= 0 {
		return f.BaseFare
	}
	blocks := int64(math.Ceil((distanceKm - f.IncludedKm) / f.BlockKm))
	return f.BaseFare + blocks*f.PerBlockFare
}

// PlatformFee is the commission on gross, rounded half away from zero.
func (f FeeSchedule) PlatformFee(gross int64) int64 {
	if gross <= 0 {
		return 0
	}
	return decimal.NewFromInt(gross).Mul(f.PlatformRate).Round(0).IntPart()
}

// NetOf is gross less the platform commission.
func (f FeeSchedule) NetOf(gross int64) int64 {
	return gross - f.PlatformFee(gross)
}

// KiloPrice is kilo × pricePerKilo rounded to the nearest minor unit.
func KiloPrice(kilo decimal.Decimal, pricePerKilo int64) int64 {
	return kilo.Mul(decimal.NewFromInt(pricePerKilo)).Round(0).IntPart()
}

// HaversineKm is the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// SettlementPlan is the outcome of comparing retained money with the true
// price of an order.
type SettlementPlan struct {
	TruePrice     int64
	Retained      int64 // before Refund is applied
	Refund        int64
	AdditionalDue int64
	PaymentStatus PaymentStatus
}

// PlanSettlement decides refund or shortfall from absolute amounts only, so
// replaying it for any webhook order converges on the same result.
func PlanSettlement(truePrice, retained int64) SettlementPlan {
	p := SettlementPlan{TruePrice: truePrice, Retained: retained}
	switch {
	case retained > truePrice:
		p.Refund = retained - truePrice
		p.PaymentStatus = PaymentStatusRefunded
	case retained < truePrice:
		p.AdditionalDue = truePrice - retained
		p.PaymentStatus = PaymentStatusUnderpaid
	default:
		p.PaymentStatus = PaymentStatusPaid
	}
	return p
}
