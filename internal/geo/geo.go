package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm ikki koordinata orasidagi masofa (km)
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return earthRadiusKm * c
}

// ClampLatLng koordinatani haqiqiy chegaralarga keltirish
func ClampLatLng(lat, lng float64) (float64, float64) {
	return math.Max(-90, math.Min(90, lat)), math.Max(-180, math.Min(180, lng))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
