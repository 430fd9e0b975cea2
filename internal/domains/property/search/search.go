// Package search implements the in-memory property search pipeline:
// free-text matching with fuzzy price terms, criteria filtering, sorting,
// and load-more windowing. It performs no I/O; callers load the candidate
// set and run the pipeline over it.
package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"nyumbani/internal/domains/property/model"
)

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortFeatured  = "featured"
)

// Price terms typed as plain numbers are matched tighter than shorthand
// ones: "500000" means roughly that figure, "500k" is a rougher ballpark.
const (
	plainPriceTolerance     = 0.10
	shorthandPriceTolerance = 0.20
)

// Criteria are AND-combined structured filters. Zero values mean "no
// constraint" for that dimension.
type Criteria struct {
	City         string
	MinPrice     float64
	MaxPrice     float64
	PropertyType string
	MinBedrooms  int
	MinBathrooms int
	Amenities    []string
}

func (c Criteria) matches(prop model.Property) bool {
	if c.City != "" && !strings.Contains(strings.ToLower(prop.City), strings.ToLower(c.City)) {
		return false
	}

	if c.MinPrice > 0 && prop.RentAmount < c.MinPrice {
		return false
	}

	if c.MaxPrice > 0 && prop.RentAmount > c.MaxPrice {
		return false
	}

	if c.PropertyType != "" && !strings.EqualFold(prop.PropertyType, c.PropertyType) {
		return false
	}

	if c.MinBedrooms > 0 && prop.Bedrooms < c.MinBedrooms {
		return false
	}

	if c.MinBathrooms > 0 && prop.Bathrooms < c.MinBathrooms {
		return false
	}

	for _, amenity := range c.Amenities {
		if !containsFold(prop.Amenities, amenity) {
			return false
		}
	}

	return true
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}

	return false
}

// Apply runs the full pipeline: free-text query, structured criteria, then
// sort. The input slice is never mutated.
func Apply(props []model.Property, criteria Criteria, query, sortBy string) []model.Property {
	terms := terms(query)

	result := make([]model.Property, 0, len(props))

	for _, prop := range props {
		if !matchesQuery(prop, terms) {
			continue
		}

		if !criteria.matches(prop) {
			continue
		}

		result = append(result, prop)
	}

	Sort(result, sortBy)

	return result
}

func terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// matchesQuery reports whether the property matches any of the query terms.
// An empty query matches everything.
func matchesQuery(prop model.Property, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	haystack := searchableText(prop)

	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}

		if target, tolerance, ok := parsePriceTerm(term); ok {
			if withinTolerance(prop.RentAmount, target, tolerance) {
				return true
			}
		}
	}

	return false
}

func searchableText(prop model.Property) string {
	parts := []string{
		prop.Title,
		prop.City,
		prop.District,
		prop.Area,
		prop.Description,
		prop.PropertyType,
		strconv.FormatFloat(prop.RentAmount, 'f', -1, 64),
		fmt.Sprintf("%d bedrooms", prop.Bedrooms),
		fmt.Sprintf("%d bathrooms", prop.Bathrooms),
	}
	parts = append(parts, prop.Amenities...)

	return strings.ToLower(strings.Join(parts, " "))
}

// parsePriceTerm interprets a query term as a price: plain numbers carry a
// ±10% tolerance, "k"/"m"-suffixed shorthand ("500k", "1.2m") a ±20% one.
func parsePriceTerm(term string) (target, tolerance float64, ok bool) {
	multiplier := 1.0
	tolerance = plainPriceTolerance

	switch {
	case strings.HasSuffix(term, "k"):
		multiplier = 1_000
		tolerance = shorthandPriceTolerance
		term = strings.TrimSuffix(term, "k")
	case strings.HasSuffix(term, "m"):
		multiplier = 1_000_000
		tolerance = shorthandPriceTolerance
		term = strings.TrimSuffix(term, "m")
	}

	value, err := strconv.ParseFloat(term, 64)
	if err != nil || value <= 0 {
		return 0, 0, false
	}

	return value * multiplier, tolerance, true
}

func withinTolerance(price, target, tolerance float64) bool {
	low := target * (1 - tolerance)
	high := target * (1 + tolerance)

	return price >= low && price <= high
}

// Sort orders the slice in place. Unknown keys leave the input order
// untouched. All sorts are stable so equal rows keep their relative order.
func Sort(props []model.Property, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].RentAmount < props[j].RentAmount
		})
	case SortPriceHigh:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].RentAmount > props[j].RentAmount
		})
	case SortNewest:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].CreatedAt.After(props[j].CreatedAt)
		})
	case SortFeatured:
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].Featured && !props[j].Featured
		})
	}
}
