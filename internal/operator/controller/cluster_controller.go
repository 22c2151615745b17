// Package controller contains the Kubernetes controllers for the cbdctl operator.
package controller

import (
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	cbdv1alpha1 "github.com/imamik/cbdctl/api/v1alpha1"
	"github.com/imamik/cbdctl/internal/lifecycle"
	"github.com/imamik/cbdctl/internal/platform/cbd"
)

const (
	// ClusterFinalizer guards remote teardown before the object is removed.
	ClusterFinalizer = "cbdctl.io/finalizer"

	// Poll cadence while a create or delete is in flight.
	defaultPollInterval = 30 * time.Second

	// Refresh cadence for active clusters (attribute resolution only).
	defaultActiveInterval = 5 * time.Minute
)

// ClusterReconciler reconciles a BigDataCluster object. Each reconcile
// drives at most one lifecycle step; the requeue interval is the
// operator's rendition of caller-driven cooperative polling.
type ClusterReconciler struct {
	client.Client
	Scheme *runtime.Scheme

	platform       cbd.PlatformManager
	enableMetrics  bool
	pollInterval   time.Duration
	activeInterval time.Duration
}

// ReconcilerOption configures a ClusterReconciler.
type ReconcilerOption func(*ClusterReconciler)

// WithPlatformClient injects the control-plane client.
func WithPlatformClient(platform cbd.PlatformManager) ReconcilerOption {
	return func(r *ClusterReconciler) {
		r.platform = platform
	}
}

// WithMetrics enables or disables prometheus metrics recording.
func WithMetrics(enabled bool) ReconcilerOption {
	return func(r *ClusterReconciler) {
		r.enableMetrics = enabled
	}
}

// WithPollInterval overrides the requeue interval used while a create
// or delete is in flight.
func WithPollInterval(d time.Duration) ReconcilerOption {
	return func(r *ClusterReconciler) {
		r.pollInterval = d
	}
}

// NewClusterReconciler creates a new ClusterReconciler.
func NewClusterReconciler(c client.Client, scheme *runtime.Scheme, platform cbd.PlatformManager, opts ...ReconcilerOption) *ClusterReconciler {
	r := &ClusterReconciler{
		Client:         c,
		Scheme:         scheme,
		platform:       platform,
		enableMetrics:  true,
		pollInterval:   defaultPollInterval,
		activeInterval: defaultActiveInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// +kubebuilder:rbac:groups=cbdctl.io,resources=bigdataclusters,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=cbdctl.io,resources=bigdataclusters/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=cbdctl.io,resources=bigdataclusters/finalizers,verbs=update
// +kubebuilder:rbac:groups=coordination.k8s.io,resources=leases,verbs=get;create;update

// Reconcile handles the reconciliation loop for BigDataCluster resources.
func (r *ClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)
	start := time.Now()

	cluster := &cbdv1alpha1.BigDataCluster{}
	if err := r.Get(ctx, req.NamespacedName, cluster); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		logger.Error(err, "unable to fetch BigDataCluster")
		return ctrl.Result{}, err
	}

	if cluster.Spec.Paused && cluster.DeletionTimestamp.IsZero() {
		logger.Info("cluster is paused, skipping reconciliation")
		return ctrl.Result{RequeueAfter: r.activeInterval}, nil
	}

	lc := r.lifecycleController(ctx, cluster)

	var result ctrl.Result
	var err error
	if !cluster.DeletionTimestamp.IsZero() {
		result, err = r.reconcileDelete(ctx, cluster, lc)
	} else {
		result, err = r.reconcileCreate(ctx, cluster, lc)
	}

	cluster.Status.LastReconcileTime = &metav1.Time{Time: time.Now()}
	cluster.Status.ObservedGeneration = cluster.Generation
	if statusErr := r.Status().Update(ctx, cluster); statusErr != nil && !apierrors.IsNotFound(statusErr) {
		logger.Error(statusErr, "failed to update status")
		if err == nil {
			err = statusErr
		}
	}

	r.recordReconcile(cluster.Name, reconcileResult(err), time.Since(start).Seconds())
	return result, err
}

// lifecycleController rebuilds the per-cluster lifecycle controller
// from the phase and cluster id persisted in status. The controller
// itself is stateless across reconciles; status is the durable record.
func (r *ClusterReconciler) lifecycleController(ctx context.Context, cluster *cbdv1alpha1.BigDataCluster) *lifecycle.Controller {
	spec := lifecycle.ClusterSpec{
		Name:      cluster.Spec.ClusterName,
		StackID:   cluster.Spec.StackRef,
		LoginUser: cluster.Spec.LoginUser,
		Flavor:    cluster.Spec.Flavor,
		NodeCount: cluster.Spec.NodeCount,
		KeyName:   cluster.Spec.SSHKeyName,
		PublicKey: cluster.Spec.PublicKey,
	}
	if spec.NodeCount == 0 {
		spec.NodeCount = 3
	}
	return lifecycle.Restore(r.platform, spec, cluster.Status.ClusterID, lifecyclePhase(cluster.Status.Phase),
		lifecycle.WithLogger(log.FromContext(ctx)))
}

// reconcileCreate drives the cluster toward Active, one lifecycle step
// per reconcile.
func (r *ClusterReconciler) reconcileCreate(ctx context.Context, cluster *cbdv1alpha1.BigDataCluster, lc *lifecycle.Controller) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if controllerutil.AddFinalizer(cluster, ClusterFinalizer) {
		if err := r.Update(ctx, cluster); err != nil {
			return ctrl.Result{}, fmt.Errorf("failed to add finalizer: %w", err)
		}
	}

	switch cluster.Status.Phase {
	case "":
		if err := lc.StartCreate(ctx); err != nil {
			r.markFailed(cluster, err)
			return ctrl.Result{}, err
		}
		r.setPhase(cluster, cbdv1alpha1.ClusterPhaseCreating)
		cluster.Status.ClusterID = lc.ClusterID()
		logger.Info("cluster create submitted", "clusterID", lc.ClusterID())
		return ctrl.Result{RequeueAfter: r.pollInterval}, nil

	case cbdv1alpha1.ClusterPhaseCreating:
		done, err := lc.PollCreateComplete(ctx)
		r.recordPoll(cluster.Name, "create")
		if err != nil {
			r.markFailed(cluster, err)
			return ctrl.Result{}, err
		}
		if !done {
			return ctrl.Result{RequeueAfter: r.pollInterval}, nil
		}
		r.setPhase(cluster, cbdv1alpha1.ClusterPhaseActive)
		meta.SetStatusCondition(&cluster.Status.Conditions, metav1.Condition{
			Type:    cbdv1alpha1.ConditionReady,
			Status:  metav1.ConditionTrue,
			Reason:  "ClusterActive",
			Message: fmt.Sprintf("cluster %s is active", cluster.Status.ClusterID),
		})
		logger.Info("cluster is active", "clusterID", cluster.Status.ClusterID)
		fallthrough

	case cbdv1alpha1.ClusterPhaseActive:
		r.refreshAttributes(ctx, cluster, lc)
		return ctrl.Result{RequeueAfter: r.activeInterval}, nil

	case cbdv1alpha1.ClusterPhaseFailed:
		// Terminal. A fresh cluster means a fresh object.
		return ctrl.Result{}, nil

	default:
		return ctrl.Result{}, fmt.Errorf("unexpected phase %q on live cluster", cluster.Status.Phase)
	}
}

// reconcileDelete drives remote teardown and removes the finalizer once
// the control plane has forgotten the cluster.
func (r *ClusterReconciler) reconcileDelete(ctx context.Context, cluster *cbdv1alpha1.BigDataCluster, lc *lifecycle.Controller) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	if !controllerutil.ContainsFinalizer(cluster, ClusterFinalizer) {
		return ctrl.Result{}, nil
	}

	if cluster.Status.Phase != cbdv1alpha1.ClusterPhaseDeleting {
		if err := lc.StartDelete(ctx); err != nil {
			r.markFailed(cluster, err)
			return ctrl.Result{}, err
		}
		if lc.Phase() == lifecycle.PhaseDeleted {
			return r.finishDelete(ctx, cluster)
		}
		r.setPhase(cluster, cbdv1alpha1.ClusterPhaseDeleting)
		logger.Info("cluster delete submitted", "clusterID", cluster.Status.ClusterID)
		return ctrl.Result{RequeueAfter: r.pollInterval}, nil
	}

	done, err := lc.PollDeleteComplete(ctx)
	r.recordPoll(cluster.Name, "delete")
	if err != nil {
		r.markFailed(cluster, err)
		return ctrl.Result{}, err
	}
	if !done {
		return ctrl.Result{RequeueAfter: r.pollInterval}, nil
	}

	return r.finishDelete(ctx, cluster)
}

func (r *ClusterReconciler) finishDelete(ctx context.Context, cluster *cbdv1alpha1.BigDataCluster) (ctrl.Result, error) {
	r.setPhase(cluster, cbdv1alpha1.ClusterPhaseDeleted)
	cluster.Status.ClusterID = ""
	controllerutil.RemoveFinalizer(cluster, ClusterFinalizer)
	if err := r.Update(ctx, cluster); err != nil {
		return ctrl.Result{}, fmt.Errorf("failed to remove finalizer: %w", err)
	}
	log.FromContext(ctx).Info("cluster deleted")
	return ctrl.Result{}, nil
}

// refreshAttributes updates the provider-reported version. Resolution
// is best-effort; a failed refresh only flips the AttributesFresh
// condition, never the reconcile result.
func (r *ClusterReconciler) refreshAttributes(ctx context.Context, cluster *cbdv1alpha1.BigDataCluster, lc *lifecycle.Controller) {
	version, ok := lc.ResolveAttribute(ctx, lifecycle.AttrCBDVersion)
	if ok {
		cluster.Status.CBDVersion = version
	}
	meta.SetStatusCondition(&cluster.Status.Conditions, metav1.Condition{
		Type:    cbdv1alpha1.ConditionAttributesFresh,
		Status:  conditionStatus(ok),
		Reason:  conditionReason(ok, "Resolved", "LookupFailed"),
		Message: fmt.Sprintf("cbdVersion=%q", cluster.Status.CBDVersion),
	})
}

func (r *ClusterReconciler) setPhase(cluster *cbdv1alpha1.BigDataCluster, phase cbdv1alpha1.ClusterPhase) {
	if cluster.Status.Phase != phase {
		r.recordPhaseTransition(cluster.Name, string(phase))
	}
	cluster.Status.Phase = phase
	cluster.Status.Message = ""
}

func (r *ClusterReconciler) markFailed(cluster *cbdv1alpha1.BigDataCluster, err error) {
	r.setPhase(cluster, cbdv1alpha1.ClusterPhaseFailed)
	cluster.Status.Message = err.Error()
	meta.SetStatusCondition(&cluster.Status.Conditions, metav1.Condition{
		Type:    cbdv1alpha1.ConditionReady,
		Status:  metav1.ConditionFalse,
		Reason:  "ClusterFailed",
		Message: err.Error(),
	})
}

// SetupWithManager sets up the controller with the Manager.
func (r *ClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&cbdv1alpha1.BigDataCluster{}).
		Complete(r)
}

// Helper functions

// lifecyclePhase maps the persisted status phase onto the phase the
// lifecycle controller resumes from.
func lifecyclePhase(phase cbdv1alpha1.ClusterPhase) lifecycle.Phase {
	switch phase {
	case cbdv1alpha1.ClusterPhaseCreating:
		return lifecycle.PhaseCreating
	case cbdv1alpha1.ClusterPhaseActive:
		return lifecycle.PhaseActive
	case cbdv1alpha1.ClusterPhaseDeleting:
		return lifecycle.PhaseDeleting
	case cbdv1alpha1.ClusterPhaseDeleted:
		return lifecycle.PhaseDeleted
	case cbdv1alpha1.ClusterPhaseFailed:
		return lifecycle.PhaseFailed
	default:
		return lifecycle.PhaseUnstarted
	}
}

func reconcileResult(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func conditionStatus(ok bool) metav1.ConditionStatus {
	if ok {
		return metav1.ConditionTrue
	}
	return metav1.ConditionFalse
}

func conditionReason(ok bool, trueReason, falseReason string) string {
	if ok {
		return trueReason
	}
	return falseReason
}
