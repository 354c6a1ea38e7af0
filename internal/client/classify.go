package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/yndnr/skywalker-go/internal/core/domain"
)

// Classify maps a request failure onto an ErrorKind.
//
// Classify is total and pure. Checks run in a fixed order: timeout,
// connection, credentials, response body. Anything left over is Unknown,
// including nil and a canceled context.
func Classify(err error) domain.ErrorKind {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return domain.Unknown
	case isTimeout(err):
		return domain.Timeout
	case isConnectionFailure(err):
		return domain.NoConnection
	case isAuthFailure(err):
		return domain.InvalidCredentials
	case isDecodeFailure(err):
		return domain.InvalidResponseBody
	default:
		return domain.Unknown
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnectionFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	if isTLSFailure(err) || isDroppedBeforeResponse(err) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

// isTLSFailure reports a handshake that never produced a usable channel.
func isTLSFailure(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
		recordErr    tls.RecordHeaderError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &recordErr)
}

// isDroppedBeforeResponse reports a connection the server closed before
// sending a status line. Only errors returned by the transport qualify;
// a body cut short after the status is not a connection failure.
func isDroppedBeforeResponse(err error) bool {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return false
	}
	return errors.Is(ue.Err, io.EOF) || errors.Is(ue.Err, io.ErrUnexpectedEOF)
}

func isAuthFailure(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

func isDecodeFailure(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
