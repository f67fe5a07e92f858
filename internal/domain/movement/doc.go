// Package movement defines the price-movement category ladder used to label
// financial-news headlines, together with the volatility-normalized return
// bucketing that maps realized returns onto those categories.
package movement
