// Package custodytest provides mocks and helpers to test the custody chain
// extensions without wiring a full application.
package custodytest
