// Package subscription exposes the subscription service over HTTP.
//
// Transition endpoints require an authenticated caller. Offer listing works
// anonymously and adds an "accessible" flag per offer once the caller is
// known. Errors are rendered as {"error":{"code","message"}} with statuses
// chosen by ErrorMapper.
package subscription
