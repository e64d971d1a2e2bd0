// Package core provides the fundamental types and interfaces for the upkeep package.
//
// This package contains:
//   - Asset, procedure, schedule, and work order data models with GORM annotations
//   - Storage interface defining the persistence contract
//   - Event types for dispatch monitoring
//   - Error values shared by the validation and service layers
//
// Most users should import the root package github.com/upkeepd/upkeep
// instead of this package directly.
package core
