// Package portfolio supplies the figures the dashboard animates: the built-in
// sustainable-investment board and an optional YAML file that replaces it.
package portfolio
