package E2eTest

import (
	"context"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/hwameistor/poolconsole/pkg/action"
	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/client"
	"github.com/hwameistor/poolconsole/pkg/poolview"
	"github.com/hwameistor/poolconsole/pkg/selection"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
	"github.com/hwameistor/poolconsole/test/e2e/framework"
)

type alwaysYes struct{}

func (alwaysYes) Confirm(context.Context, action.Confirmation) (bool, error) { return true, nil }

func names(rows []tasklist.DisplayRow[api.Pool]) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Item.PoolName)
	}
	return out
}

func find(rows []tasklist.DisplayRow[api.Pool], name string) (tasklist.DisplayRow[api.Pool], bool) {
	for _, row := range rows {
		if row.Item.PoolName == name {
			return row, true
		}
	}
	return tasklist.DisplayRow[api.Pool]{}, false
}

var _ = ginkgo.Describe("pool list reconciliation", ginkgo.Label("pool"), func() {
	var (
		server     *framework.Server
		c          *client.Client
		wrapper    *taskwrapper.Wrapper
		reconciler *tasklist.Reconciler[api.Pool]
		recorder   *framework.Recorder[tasklist.Snapshot[api.Pool]]
		tracker    *selection.Tracker[api.Pool]
		submitter  *action.Submitter
		ctx        context.Context
		cancel     context.CancelFunc
	)

	ginkgo.BeforeEach(func() {
		// mutations take longer than the server waits, so they are answered with 202
		server = framework.StartServer(400*time.Millisecond, 20*time.Millisecond,
			&api.Pool{PoolName: "rbd", Type: api.PoolTypeReplicated, Size: 3},
			&api.Pool{PoolName: "images", Type: api.PoolTypeReplicated, Size: 2},
		)
		ctx, cancel = context.WithCancel(context.Background())

		c = client.NewClient(server.URL, time.Second)
		wrapper = taskwrapper.NewWrapper(c.Tasks(poolview.TaskPattern))
		recorder = &framework.Recorder[tasklist.Snapshot[api.Pool]]{}

		var err error
		reconciler, err = poolview.NewReconciler(c.ListPools, wrapper, 50*time.Millisecond, recorder.Record)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		tracker = selection.NewTracker(poolview.Identity)
		submitter = action.NewSubmitter(c, wrapper, func(ctx context.Context) { reconciler.Refresh(ctx) })
	})

	ginkgo.AfterEach(func() {
		reconciler.Stop()
		cancel()
		server.Close()
	})

	ginkgo.It("lists the pools", func() {
		snapshot := reconciler.Refresh(ctx)
		gomega.Expect(snapshot.ViewState).To(gomega.Equal(tasklist.ViewStateLoaded))
		gomega.Expect(names(snapshot.Rows)).To(gomega.Equal([]string{"images", "rbd"}))
	})

	ginkgo.It("shows a pending pool until its creation completes", func() {
		gomega.Expect(submitter.Create(ctx, &api.PoolCreateReqBody{PoolName: "new-pool"})).To(gomega.Succeed())

		snapshot := reconciler.Snapshot()
		row, ok := find(snapshot.Rows, "new-pool")
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(row.Placeholder).To(gomega.BeTrue())
		gomega.Expect(row.Executing()).To(gomega.Equal("Creating"))

		tracker.Update([]tasklist.DisplayRow[api.Pool]{row})
		gomega.Expect(tracker.HasSelection()).To(gomega.BeFalse())

		gomega.Expect(reconciler.Start(ctx)).To(gomega.Succeed())
		gomega.Eventually(func() bool {
			last, ok := recorder.Last()
			if !ok {
				return false
			}
			row, found := find(last.Rows, "new-pool")
			return found && !row.Placeholder && row.Task == nil
		}, 3*time.Second, 50*time.Millisecond).Should(gomega.BeTrue())
	})

	ginkgo.It("tags the deleted pool until it is gone", func() {
		snapshot := reconciler.Refresh(ctx)
		tracker.Select(snapshot.Rows, "images")

		invoker := action.NewDeleteInvoker(submitter.DeleteOptions(), tracker, wrapper)
		gomega.Expect(invoker.Run(ctx, alwaysYes{})).To(gomega.Succeed())
		gomega.Expect(invoker.State()).To(gomega.Equal(action.StateIdle))

		snapshot = reconciler.Snapshot()
		gomega.Expect(snapshot.Rows).To(gomega.HaveLen(2))
		row, ok := find(snapshot.Rows, "images")
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(row.Executing()).To(gomega.Equal("Deleting"))

		gomega.Expect(reconciler.Start(ctx)).To(gomega.Succeed())
		gomega.Eventually(func() []string {
			last, _ := recorder.Last()
			return names(last.Rows)
		}, 3*time.Second, 50*time.Millisecond).Should(gomega.Equal([]string{"rbd"}))
	})

	ginkgo.It("keeps the list when the server goes away", func() {
		gomega.Expect(names(reconciler.Refresh(ctx).Rows)).To(gomega.HaveLen(2))

		server.Close()
		snapshot := reconciler.Refresh(ctx)
		gomega.Expect(snapshot.ViewState).To(gomega.Equal(tasklist.ViewStateErrorDegraded))
		gomega.Expect(snapshot.Err).To(gomega.HaveOccurred())
		gomega.Expect(names(snapshot.Rows)).To(gomega.Equal([]string{"images", "rbd"}))
	})
})
