// Package main provides the entry point for the bias report CLI.
//
// biasreport loads the law school bar passage dataset, compares pass rates
// between White and Non-White students and saves a four panel figure with
// statistical parity difference and disparate impact.
//
// Usage:
//
//	biasreport
//	biasreport --input data.csv --output out/bias.png
package main

func main() {
	Execute()
}
