// Package domain defines the data models, contracts and error taxonomy
// shared across the simulation. It contains plain types (types/), interfaces
// (interfaces/) and sentinel errors only.
package domain
