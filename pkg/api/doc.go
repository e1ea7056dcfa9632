// Package api holds the request and response messages of the pocketbook.v1
// services. Messages travel as JSON; dates are "YYYY-MM-DD" strings and money
// is a decimal string.
package api
