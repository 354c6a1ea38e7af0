// Package tlsroots builds the root certificate pool used to verify
// SkyWalker servers reached over HTTPS.
//
// Deployments commonly sign the server certificate with a site CA; its PEM
// bundle is added on top of the system roots.
package tlsroots
