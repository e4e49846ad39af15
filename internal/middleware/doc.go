// Package middleware provides HTTP middleware for the image browser API.
//
// It includes:
//   - Prometheus request metrics labelled by route template
//   - Request logging in W3C Extended Log Format
//   - gzip compression for JSON bodies; event streams pass through untouched
package middleware
