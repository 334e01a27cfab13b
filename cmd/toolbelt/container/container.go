package container

import (
	"go.uber.org/fx"

	"github.com/sergeii/toolbelt/internal/core/usecases/fetchheaders"
	"github.com/sergeii/toolbelt/internal/core/usecases/inspectcertificate"
	"github.com/sergeii/toolbelt/internal/core/usecases/lookupdns"
	"github.com/sergeii/toolbelt/internal/core/usecases/measurelatency"
	"github.com/sergeii/toolbelt/internal/core/usecases/reversedns"
	"github.com/sergeii/toolbelt/internal/core/usecases/testconnectivity"
	"github.com/sergeii/toolbelt/internal/core/usecases/testratelimit"
)

type Container struct {
	TestConnectivity   testconnectivity.UseCase
	FetchHeaders       fetchheaders.UseCase
	MeasureLatency     measurelatency.UseCase
	TestRateLimit      testratelimit.UseCase
	InspectCertificate inspectcertificate.UseCase
	LookupDNS          lookupdns.UseCase
	ReverseDNS         reversedns.UseCase
}

func New(
	testConnectivityUseCase testconnectivity.UseCase,
	fetchHeadersUseCase fetchheaders.UseCase,
	measureLatencyUseCase measurelatency.UseCase,
	testRateLimitUseCase testratelimit.UseCase,
	inspectCertificateUseCase inspectcertificate.UseCase,
	lookupDNSUseCase lookupdns.UseCase,
	reverseDNSUseCase reversedns.UseCase,
) Container {
	return Container{
		TestConnectivity:   testConnectivityUseCase,
		FetchHeaders:       fetchHeadersUseCase,
		MeasureLatency:     measureLatencyUseCase,
		TestRateLimit:      testRateLimitUseCase,
		InspectCertificate: inspectCertificateUseCase,
		LookupDNS:          lookupDNSUseCase,
		ReverseDNS:         reverseDNSUseCase,
	}
}

var Module = fx.Module("container",
	fx.Provide(testconnectivity.New),
	fx.Provide(fetchheaders.New),
	fx.Provide(measurelatency.New),
	fx.Provide(testratelimit.New),
	fx.Provide(inspectcertificate.New),
	fx.Provide(lookupdns.New),
	fx.Provide(reversedns.New),
	fx.Provide(New),
)
