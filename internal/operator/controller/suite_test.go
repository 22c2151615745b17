//go:build integration

// Package controller integration tests run against a real kube-apiserver
// and etcd provided by envtest, exercising watch behavior, status
// subresource updates and CRD validation that the fake client cannot.
//
// Run with:
//
//	KUBEBUILDER_ASSETS="$(setup-envtest use -p path)" go test -v -tags=integration ./internal/operator/controller/...
package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/envtest"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	cbdv1alpha1 "github.com/imamik/cbdctl/api/v1alpha1"
	"github.com/imamik/cbdctl/internal/platform/cbd"
)

var (
	cfg       *rest.Config
	k8sClient client.Client
	testEnv   *envtest.Environment
	ctx       context.Context
	cancel    context.CancelFunc

	platform *statefulPlatform
)

// statefulPlatform is a minimal in-memory control plane: created clusters
// become ACTIVE on the second poll and vanish after deletion.
type statefulPlatform struct {
	cbd.MockClient

	mu       sync.Mutex
	nextID   int
	clusters map[string]*cbd.Cluster
	polls    map[string]int
}

func newStatefulPlatform() *statefulPlatform {
	p := &statefulPlatform{
		clusters: map[string]*cbd.Cluster{},
		polls:    map[string]int{},
	}
	p.CreateClusterFunc = func(_ context.Context, opts cbd.CreateClusterOpts) (*cbd.Cluster, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.nextID++
		c := &cbd.Cluster{
			ID:         fmt.Sprintf("%d", p.nextID),
			Name:       opts.Name,
			Status:     cbd.StatusBuilding,
			StackID:    opts.StackID,
			CBDVersion: "2",
		}
		p.clusters[c.ID] = c
		return c, nil
	}
	p.GetClusterFunc = func(_ context.Context, id string) (*cbd.Cluster, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		c, ok := p.clusters[id]
		if !ok {
			return nil, cbd.Error{Code: 404, Message: "no such cluster"}
		}
		p.polls[id]++
		if c.Status == cbd.StatusBuilding && p.polls[id] >= 2 {
			c.Status = cbd.StatusActive
		}
		out := *c
		return &out, nil
	}
	p.DeleteClusterFunc = func(_ context.Context, id string) error {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, ok := p.clusters[id]; !ok {
			return cbd.Error{Code: 404, Message: "no such cluster"}
		}
		delete(p.clusters, id)
		return nil
	}
	return p
}

func TestControllerIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Controller Integration Suite")
}

var _ = BeforeSuite(func() {
	ctx, cancel = context.WithCancel(context.Background())

	By("bootstrapping test environment with real kube-apiserver and etcd")
	testEnv = &envtest.Environment{
		CRDDirectoryPaths:     []string{filepath.Join("..", "..", "..", "config", "crd", "bases")},
		ErrorIfCRDPathMissing: true,
	}

	var err error
	cfg, err = testEnv.Start()
	Expect(err).NotTo(HaveOccurred())
	Expect(cfg).NotTo(BeNil())

	err = cbdv1alpha1.AddToScheme(scheme.Scheme)
	Expect(err).NotTo(HaveOccurred())

	k8sClient, err = client.New(cfg, client.Options{Scheme: scheme.Scheme})
	Expect(err).NotTo(HaveOccurred())

	k8sManager, err := ctrl.NewManager(cfg, ctrl.Options{
		Scheme:  scheme.Scheme,
		Metrics: metricsserver.Options{BindAddress: "0"},
	})
	Expect(err).NotTo(HaveOccurred())

	platform = newStatefulPlatform()
	err = NewClusterReconciler(
		k8sManager.GetClient(),
		k8sManager.GetScheme(),
		platform,
		WithMetrics(false),
		WithPollInterval(50*time.Millisecond),
	).SetupWithManager(k8sManager)
	Expect(err).NotTo(HaveOccurred())

	go func() {
		defer GinkgoRecover()
		err := k8sManager.Start(ctx)
		Expect(err).NotTo(HaveOccurred())
	}()

	By("waiting for manager cache to sync")
	Eventually(func() bool {
		return k8sManager.GetCache().WaitForCacheSync(ctx)
	}, time.Second*30, time.Millisecond*500).Should(BeTrue())
})

var _ = AfterSuite(func() {
	cancel()
	By("tearing down the test environment")
	err := testEnv.Stop()
	Expect(err).NotTo(HaveOccurred())
})

var _ = Describe("BigDataCluster controller", func() {
	const (
		timeout  = time.Second * 30
		interval = time.Millisecond * 100
	)

	var name string
	const namespace = "default"

	newCluster := func() *cbdv1alpha1.BigDataCluster {
		return &cbdv1alpha1.BigDataCluster{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
			Spec: cbdv1alpha1.BigDataClusterSpec{
				ClusterName: name,
				StackRef:    "MOCK_STACK",
				Flavor:      "Mock Flavor",
				NodeCount:   3,
				LoginUser:   "hadoop",
				SSHKeyName:  name + "-key",
				PublicKey:   "ssh-rsa AAAAB3NzaC1yc2E integration@test",
			},
		}
	}

	fetch := func() (*cbdv1alpha1.BigDataCluster, error) {
		out := &cbdv1alpha1.BigDataCluster{}
		err := k8sClient.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, out)
		return out, err
	}

	BeforeEach(func() {
		name = fmt.Sprintf("itest-cluster-%d", time.Now().UnixNano())
	})

	AfterEach(func() {
		cluster, err := fetch()
		if err == nil {
			cluster.Finalizers = nil
			_ = k8sClient.Update(ctx, cluster)
			_ = k8sClient.Delete(ctx, cluster)
		}
	})

	It("drives a new cluster to Active", func() {
		Expect(k8sClient.Create(ctx, newCluster())).To(Succeed())

		Eventually(func() cbdv1alpha1.ClusterPhase {
			cluster, err := fetch()
			if err != nil {
				return ""
			}
			return cluster.Status.Phase
		}, timeout, interval).Should(Equal(cbdv1alpha1.ClusterPhaseActive))

		cluster, err := fetch()
		Expect(err).NotTo(HaveOccurred())
		Expect(cluster.Status.ClusterID).NotTo(BeEmpty())
		Expect(cluster.Status.CBDVersion).To(Equal("2"))
		Expect(cluster.Finalizers).To(ContainElement(ClusterFinalizer))
	})

	It("tears the cluster down and removes the finalizer on delete", func() {
		Expect(k8sClient.Create(ctx, newCluster())).To(Succeed())

		Eventually(func() cbdv1alpha1.ClusterPhase {
			cluster, err := fetch()
			if err != nil {
				return ""
			}
			return cluster.Status.Phase
		}, timeout, interval).Should(Equal(cbdv1alpha1.ClusterPhaseActive))

		cluster, err := fetch()
		Expect(err).NotTo(HaveOccurred())
		Expect(k8sClient.Delete(ctx, cluster)).To(Succeed())

		Eventually(func() bool {
			_, err := fetch()
			return errors.IsNotFound(err)
		}, timeout, interval).Should(BeTrue())
	})

	It("leaves paused clusters untouched", func() {
		cluster := newCluster()
		cluster.Spec.Paused = true
		Expect(k8sClient.Create(ctx, cluster)).To(Succeed())

		Consistently(func() string {
			cluster, err := fetch()
			if err != nil {
				return "gone"
			}
			return cluster.Status.ClusterID
		}, time.Second, interval).Should(BeEmpty())
	})
})
