// Package github implements the GitHub API adapter used by the scanner.
//
// The adapter covers the handful of REST endpoints the pipeline needs:
// recursive trees, file contents, repository metadata, commits, user
// repository listings and code search. It is built on go-github and
// authenticates with a static bearer token through oauth2.
//
// # Rate Limiting
//
// Every request goes through [RateLimiter]. After each response the
// X-RateLimit-Remaining and X-RateLimit-Reset headers are inspected; when
// the remaining budget drops to [MinRemaining] or below, the caller is
// suspended until the reset time, with a progress notice at least every
// [ProgressInterval]. An optional token bucket throttles requests up front.
//
// # Errors
//
// Failures are returned as [domain.OpError] values classified by kind:
// transport failures, undecodable payloads and missing resources.
package github
