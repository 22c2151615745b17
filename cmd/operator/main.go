// Package main is the entrypoint for the cbdctl-operator.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	cbdv1alpha1 "github.com/imamik/cbdctl/api/v1alpha1"
	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/operator/controller"
	"github.com/imamik/cbdctl/internal/platform/cbd"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")

	// Version is set at build time
	Version = "dev"
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(cbdv1alpha1.AddToScheme(scheme))
}

func main() {
	var (
		metricsAddr          string
		probeAddr            string
		enableLeaderElection bool
		leaderElectionID     string
	)

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", true, "Enable leader election for controller manager.")
	flag.StringVar(&leaderElectionID, "leader-election-id", "cbdctl-operator", "The name of the leader election resource.")

	opts := zap.Options{
		Development: os.Getenv("DEBUG") == "true",
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	setupLog.Info("starting cbdctl-operator", "version", Version)

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress: metricsAddr,
		},
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       leaderElectionID,
		// LeaderElectionReleaseOnCancel defines if the leader should step down voluntarily
		// when the Manager ends. This requires the binary to immediately end when the
		// Manager is stopped, otherwise, this setting is unsafe.
		LeaderElectionReleaseOnCancel: true,
	})
	if err != nil {
		setupLog.Error(err, "unable to create manager")
		os.Exit(1)
	}

	platform, err := platformClientFromEnv(context.Background())
	if err != nil {
		setupLog.Error(err, "unable to build control plane client")
		os.Exit(1)
	}

	timeouts := config.LoadTimeouts()
	if err = controller.NewClusterReconciler(
		mgr.GetClient(),
		mgr.GetScheme(),
		platform,
		controller.WithPollInterval(timeouts.PollInterval),
	).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "BigDataCluster")
		os.Exit(1)
	}

	// Add health checks
	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}

// platformClientFromEnv builds the control plane client from CBD_*
// environment variables. A pre-issued CBD_TOKEN wins; otherwise
// CBD_USERNAME and CBD_API_KEY are exchanged for one.
func platformClientFromEnv(ctx context.Context) (cbd.PlatformManager, error) {
	region := os.Getenv("CBD_REGION")
	tenantID := os.Getenv("CBD_TENANT_ID")
	if region == "" || tenantID == "" {
		return nil, errMissingEnv("CBD_REGION and CBD_TENANT_ID are required")
	}

	token := os.Getenv("CBD_TOKEN")
	if token == "" {
		username := os.Getenv("CBD_USERNAME")
		apiKey := os.Getenv("CBD_API_KEY")
		if username == "" || apiKey == "" {
			return nil, errMissingEnv("set CBD_TOKEN, or CBD_USERNAME and CBD_API_KEY")
		}

		authURL := os.Getenv("CBD_AUTH_URL")
		if authURL == "" {
			authURL = cbd.DefaultAuthURL(region)
		}

		httpClient := &http.Client{Timeout: config.LoadTimeouts().RequestTimeout}
		var err error
		token, err = cbd.Authenticate(ctx, httpClient, authURL, username, apiKey)
		if err != nil {
			return nil, err
		}
	}

	var opts []cbd.ClientOption
	if endpoint := os.Getenv("CBD_ENDPOINT"); endpoint != "" {
		opts = append(opts, cbd.WithEndpoint(endpoint))
	}

	return cbd.NewRealClient(region, tenantID, token, opts...), nil
}

type errMissingEnv string

func (e errMissingEnv) Error() string { return string(e) }
