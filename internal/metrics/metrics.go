// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)

	OTPSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_otp_sends_total",
			Help: "Total number of OTP send attempts",
		},
		[]string{"result"},
	)

	OTPVerifiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_otp_verifies_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"result"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of profile submission attempts",
		},
		[]string{"result"},
	)

	PhotoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_photo_uploads_total",
			Help: "Total number of photo upload attempts",
		},
		[]string{"result"},
	)
)
