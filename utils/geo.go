package utils

import "math"

const earthRadiusKm = 6371.0

const (
	BaseDeliveryFee   int64 = 20
	feePerExtraKm     int64 = 5
	freeDistanceKm          = 3.0
	etaBaseMinutes          = 10
	etaMinutesPerKm         = 3
)

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// DeliveryFee charges the base fee within freeDistanceKm and a per-km
// surcharge beyond it.
func DeliveryFee(distanceKm float64) int64 {
	if distanceKm <= freeDistanceKm {
		return BaseDeliveryFee
	}
	extra := int64(math.Ceil(distanceKm - freeDistanceKm))
	return BaseDeliveryFee + extra*feePerExtraKm
}

// EtaMinutes is the display estimate for the quote endpoint; actual orders
// carry the fixed 35 minute promise regardless.
func EtaMinutes(distanceKm float64) int {
	return etaBaseMinutes + int(math.Ceil(distanceKm*etaMinutesPerKm))
}
