package cache

import "strconv"

func RestaurantKey(id uint) string {
	return "restaurant:" + strconv.FormatUint(uint64(id), 10)
}

// RestaurantListKey covers only the unfiltered first page; filtered searches
// always hit the database.
const RestaurantListKey = "restaurants:front"
