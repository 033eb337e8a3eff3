package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	common_models "go-hrms/internal/common/models"
	"go-hrms/internal/features/audit"
	"go-hrms/internal/features/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeApprovalRepo mirrors the conditional-update semantics of the Mongo
// repository in memory: every transition re-checks its full precondition
// under the lock and returns nil on a miss.
type fakeApprovalRepo struct {
	mu       sync.Mutex
	requests map[string]*ApprovalRequest
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{requests: make(map[string]*ApprovalRequest)}
}

func cloneRequest(r *ApprovalRequest) *ApprovalRequest {
	out := *r
	out.ApprovalChain = make([]ApprovalChainStep, len(r.ApprovalChain))
	copy(out.ApprovalChain, r.ApprovalChain)
	return &out
}

func (f *fakeApprovalRepo) Create(ctx context.Context, request *ApprovalRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	f.requests[request.ID.Hex()] = cloneRequest(request)
	return nil
}

func (f *fakeApprovalRepo) FindByID(ctx context.Context, id string) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) FindAll(ctx context.Context) ([]ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ApprovalRequest
	for _, r := range f.requests {
		out = append(out, *cloneRequest(r))
	}
	return out, nil
}

func (f *fakeApprovalRepo) FindByEmployee(ctx context.Context, employeeID string) ([]ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ApprovalRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, *cloneRequest(r))
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) FindPendingForApprover(ctx context.Context, approverEmployeeID string) ([]ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ApprovalRequest
	for _, r := range f.requests {
		if !r.Decidable() {
			continue
		}
		step := r.CurrentChainStep()
		if step == nil || step.Status != StepStatusPending {
			continue
		}
		if step.ApproverEmployeeID == approverEmployeeID || step.DelegatedTo == approverEmployeeID {
			out = append(out, *cloneRequest(r))
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) FindActive(ctx context.Context) ([]ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ApprovalRequest
	for _, r := range f.requests {
		if r.Status == RequestStatusPending || r.Status == RequestStatusInProgress {
			out = append(out, *cloneRequest(r))
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) DecideStep(ctx context.Context, params DecideStepParams) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.requests[params.RequestID]
	if !ok || !r.Decidable() || r.CurrentStep != params.StepIndex {
		return nil, nil
	}
	if params.StepIndex < 0 || params.StepIndex >= len(r.ApprovalChain) {
		return nil, nil
	}
	step := &r.ApprovalChain[params.StepIndex]
	if step.Status != StepStatusPending {
		return nil, nil
	}
	if params.RequireApprover != "" &&
		step.ApproverEmployeeID != params.RequireApprover &&
		step.DelegatedTo != params.RequireApprover {
		return nil, nil
	}

	now := time.Now()
	step.Status = params.Decision
	step.Notes = params.Notes
	step.DecidedAt = &now
	r.UpdatedAt = now

	switch {
	case params.Decision == StepStatusRejected:
		r.Status = RequestStatusRejected
	case params.FinalStep:
		r.Status = RequestStatusApproved
		r.CurrentStep = params.StepIndex + 1
	default:
		r.Status = RequestStatusInProgress
		r.CurrentStep = params.StepIndex + 1
	}
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) ApproveEmptyChain(ctx context.Context, id string) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || !r.Decidable() || len(r.ApprovalChain) != 0 {
		return nil, nil
	}
	r.Status = RequestStatusApproved
	r.UpdatedAt = time.Now()
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) CancelRequest(ctx context.Context, id string) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != RequestStatusPending || r.CurrentStep != 0 {
		return nil, nil
	}
	r.Status = RequestStatusCancelled
	r.UpdatedAt = time.Now()
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) DelegateStep(ctx context.Context, id string, stepIndex int, requireApprover, delegatedTo, delegatedToName string) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || !r.Decidable() || r.CurrentStep != stepIndex {
		return nil, nil
	}
	if stepIndex < 0 || stepIndex >= len(r.ApprovalChain) {
		return nil, nil
	}
	step := &r.ApprovalChain[stepIndex]
	if step.Status != StepStatusPending {
		return nil, nil
	}
	if requireApprover != "" && step.ApproverEmployeeID != requireApprover {
		return nil, nil
	}
	step.DelegatedTo = delegatedTo
	step.DelegatedToName = delegatedToName
	r.UpdatedAt = time.Now()
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) EscalateRequest(ctx context.Context, id string) (*ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || (r.Status != RequestStatusPending && r.Status != RequestStatusInProgress) {
		return nil, nil
	}
	r.Status = RequestStatusEscalated
	r.UpdatedAt = time.Now()
	return cloneRequest(r), nil
}

func (f *fakeApprovalRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeDispatcher struct {
	mu    sync.Mutex
	calls []string
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, request *ApprovalRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, request.ID.Hex())
	return nil
}

type fakeAudit struct{}

func (fakeAudit) LogChange(ctx context.Context, action common_models.AuditAction, module, recordID, actorID, actorName string, changes map[string]common_models.Change) error {
	return nil
}
func (fakeAudit) GetRecordHistory(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error) {
	return nil, nil
}
func (fakeAudit) ListRecent(ctx context.Context, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type fakeNotifications struct{}

func (fakeNotifications) Notify(ctx context.Context, employeeID, title, message string, notifType notification.NotificationType, link string) error {
	return nil
}
func (fakeNotifications) ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}
func (fakeNotifications) MarkRead(ctx context.Context, id string) error { return nil }

var _ ApprovalRepository = (*fakeApprovalRepo)(nil)
var _ audit.AuditService = fakeAudit{}
var _ notification.NotificationService = fakeNotifications{}

func newTestService(repo ApprovalRepository, dispatcher SideEffectDispatcher) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{
		Repo:          repo,
		Dispatcher:    dispatcher,
		AuditService:  fakeAudit{},
		Notifications: fakeNotifications{},
		Logger:        zap.NewNop(),
		SLA:           48 * time.Hour,
	}
}

func twoStepRequest(t *testing.T, repo ApprovalRepository) *ApprovalRequest {
	t.Helper()
	request := &ApprovalRequest{
		RequestType:  RequestTypeLeave,
		EmployeeID:   "E001",
		EmployeeName: "Asha",
		ApprovalChain: []ApprovalChainStep{
			{ID: "s1", Level: 2, ApproverEmployeeID: "M001", ApproverName: "Priya", Status: StepStatusPending},
			{ID: "s2", Level: 3, ApproverEmployeeID: "M002", ApproverName: "Daniel", Status: StepStatusPending},
		},
		SourceRequestID: "leave-1",
	}
	svc := newTestService(repo, &fakeDispatcher{})
	if err := svc.CreateRequest(context.Background(), request); err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	return request
}

func managerCaller(id string) common_models.CallerContext {
	return common_models.CallerContext{EmployeeID: id, EmployeeName: id, Permissions: []string{PermApprove}}
}

func adminCaller(id string) common_models.CallerContext {
	return common_models.CallerContext{EmployeeID: id, EmployeeName: id, Permissions: []string{PermManageAll}}
}

func TestApproveFullRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	updated, err := svc.Approve(ctx, id, managerCaller("M001"), "ok")
	if err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	if updated.Status != RequestStatusInProgress {
		t.Errorf("status after first approval = %s, want in_progress", updated.Status)
	}
	if updated.CurrentStep != 1 {
		t.Errorf("current step = %d, want 1", updated.CurrentStep)
	}
	if updated.ApprovalChain[0].Status != StepStatusApproved {
		t.Errorf("step 0 status = %s, want approved", updated.ApprovalChain[0].Status)
	}
	if updated.ApprovalChain[0].DecidedAt == nil {
		t.Error("step 0 has no decided_at timestamp")
	}
	if len(dispatcher.calls) != 0 {
		t.Errorf("dispatch fired before terminal approval: %v", dispatcher.calls)
	}

	updated, err = svc.Approve(ctx, id, managerCaller("M002"), "final ok")
	if err != nil {
		t.Fatalf("final Approve() error = %v", err)
	}
	if updated.Status != RequestStatusApproved {
		t.Errorf("status after final approval = %s, want approved", updated.Status)
	}
	if len(dispatcher.calls) != 1 {
		t.Fatalf("dispatch calls = %d, want exactly 1", len(dispatcher.calls))
	}
}

func TestApproveWrongCaller(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)

	// M002 holds step 1, not step 0.
	_, err := svc.Approve(ctx, request.ID.Hex(), managerCaller("M002"), "")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthorizationError", err)
	}
}

func TestApproveTerminalRequest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	if _, err := svc.Approve(ctx, id, managerCaller("M001"), ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if _, err := svc.Reject(ctx, id, managerCaller("M002"), "no"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	_, err := svc.Approve(ctx, id, managerCaller("M002"), "")
	var conflict *StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want StateConflictError on terminal request", err)
	}
}

func TestRejectLeavesLaterStepsPending(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)
	request := twoStepRequest(t, repo)

	updated, err := svc.Reject(ctx, request.ID.Hex(), managerCaller("M001"), "not justified")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if updated.Status != RequestStatusRejected {
		t.Errorf("status = %s, want rejected", updated.Status)
	}
	if updated.ApprovalChain[0].Status != StepStatusRejected {
		t.Errorf("step 0 status = %s, want rejected", updated.ApprovalChain[0].Status)
	}
	if updated.ApprovalChain[1].Status != StepStatusPending {
		t.Errorf("step 1 status = %s, want pending (never reached)", updated.ApprovalChain[1].Status)
	}
	if len(dispatcher.calls) != 0 {
		t.Errorf("dispatch fired on rejection: %v", dispatcher.calls)
	}
}

func TestCancelBeforeAndAfterFirstDecision(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	fresh := twoStepRequest(t, repo)
	requester := common_models.CallerContext{EmployeeID: "E001", EmployeeName: "Asha"}

	updated, err := svc.Cancel(ctx, fresh.ID.Hex(), requester)
	if err != nil {
		t.Fatalf("Cancel() before decision error = %v", err)
	}
	if updated.Status != RequestStatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}

	decided := twoStepRequest(t, repo)
	if _, err := svc.Approve(ctx, decided.ID.Hex(), managerCaller("M001"), ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	_, err = svc.Cancel(ctx, decided.ID.Hex(), requester)
	var conflict *StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want StateConflictError after first decision", err)
	}
}

func TestCancelByStranger(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)

	_, err := svc.Cancel(ctx, request.ID.Hex(), managerCaller("M009"))
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthorizationError", err)
	}
}

func TestEmptyChainAdminOverrideOnly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)

	request := &ApprovalRequest{
		RequestType:   RequestTypeLeave,
		EmployeeID:    "D001",
		EmployeeName:  "Mei",
		ApprovalChain: []ApprovalChainStep{},
	}
	if err := svc.CreateRequest(ctx, request); err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	id := request.ID.Hex()

	stored, _ := repo.FindByID(ctx, id)
	if stored.Status != RequestStatusPending {
		t.Fatalf("empty-chain request status = %s, want pending (never auto-approved)", stored.Status)
	}

	_, err := svc.Approve(ctx, id, managerCaller("M001"), "")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("manager approval of empty chain: error = %v, want AuthorizationError", err)
	}

	updated, err := svc.Approve(ctx, id, adminCaller("ADMIN"), "override")
	if err != nil {
		t.Fatalf("admin Approve() error = %v", err)
	}
	if updated.Status != RequestStatusApproved {
		t.Errorf("status = %s, want approved", updated.Status)
	}
	if len(dispatcher.calls) != 1 {
		t.Errorf("dispatch calls = %d, want 1", len(dispatcher.calls))
	}
}

func TestDelegateThenDelegateDecides(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	if err := svc.Delegate(ctx, id, 0, managerCaller("M001"), "M003", "Backup"); err != nil {
		t.Fatalf("Delegate() error = %v", err)
	}

	updated, err := svc.Approve(ctx, id, managerCaller("M003"), "covering")
	if err != nil {
		t.Fatalf("delegate Approve() error = %v", err)
	}
	if updated.ApprovalChain[0].Status != StepStatusApproved {
		t.Errorf("step 0 status = %s, want approved", updated.ApprovalChain[0].Status)
	}
	if updated.ApprovalChain[0].ApproverEmployeeID != "M001" {
		t.Errorf("approver of record changed to %s, must stay M001", updated.ApprovalChain[0].ApproverEmployeeID)
	}
}

func TestDelegateNonCurrentStep(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)

	err := svc.Delegate(ctx, request.ID.Hex(), 1, managerCaller("M002"), "M003", "Backup")
	var conflict *StateConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want StateConflictError for non-current step", err)
	}
}

func TestEscalatePermissionsAndDecidability(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	err := svc.Escalate(ctx, id, managerCaller("M001"))
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("manager escalate: error = %v, want AuthorizationError", err)
	}

	hr := common_models.CallerContext{EmployeeID: "HR01", Permissions: []string{PermViewAll}}
	if err := svc.Escalate(ctx, id, hr); err != nil {
		t.Fatalf("HR Escalate() error = %v", err)
	}

	stored, _ := repo.FindByID(ctx, id)
	if stored.Status != RequestStatusEscalated {
		t.Fatalf("status = %s, want escalated", stored.Status)
	}

	// Escalation flags a stall; the named approver can still decide.
	updated, err := svc.Approve(ctx, id, managerCaller("M001"), "late")
	if err != nil {
		t.Fatalf("Approve() on escalated request error = %v", err)
	}
	if updated.Status != RequestStatusInProgress {
		t.Errorf("status = %s, want in_progress", updated.Status)
	}
}

func TestConcurrentDecisionsOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	if err := svc.Delegate(ctx, id, 0, managerCaller("M001"), "M003", "Backup"); err != nil {
		t.Fatalf("Delegate() error = %v", err)
	}

	// Approver and delegate race on the same step: exactly one decision
	// lands, the loser gets a conflict.
	var wg sync.WaitGroup
	var err1, err2 error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err1 = svc.Approve(ctx, id, managerCaller("M001"), "mine")
	}()
	go func() {
		defer wg.Done()
		_, err2 = svc.Reject(ctx, id, managerCaller("M003"), "mine too")
	}()
	wg.Wait()

	if err1 != nil && err2 != nil {
		t.Fatal("both decisions failed, one should have won")
	}
	if err1 == nil && err2 == nil {
		t.Fatal("both decisions succeeded, step decided twice")
	}

	// The loser is told either that the step moved on or that it is no
	// longer theirs to decide, depending on when it observed the state.
	loserErr := err1
	if loserErr == nil {
		loserErr = err2
	}
	var conflict *StateConflictError
	var authErr *AuthorizationError
	if !errors.As(loserErr, &conflict) && !errors.As(loserErr, &authErr) {
		t.Fatalf("loser error = %v, want StateConflictError or AuthorizationError", loserErr)
	}

	stored, _ := repo.FindByID(ctx, id)
	if stored.ApprovalChain[0].Status == StepStatusPending {
		t.Error("step 0 still pending after a winning decision")
	}
}

func TestGetRequestVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	request := twoStepRequest(t, repo)
	id := request.ID.Hex()

	if err := svc.Delegate(ctx, id, 0, managerCaller("M001"), "M003", "Backup"); err != nil {
		t.Fatalf("Delegate() error = %v", err)
	}

	allowed := []common_models.CallerContext{
		{EmployeeID: "E001"},
		{EmployeeID: "M001", Permissions: []string{PermApprove}},
		{EmployeeID: "M002", Permissions: []string{PermApprove}},
		{EmployeeID: "M003", Permissions: []string{PermApprove}},
		{EmployeeID: "HR01", Permissions: []string{PermViewAll}},
		{EmployeeID: "A001", Permissions: []string{PermManageAll}},
	}
	for _, caller := range allowed {
		if _, err := svc.GetRequest(ctx, id, caller); err != nil {
			t.Errorf("GetRequest() for %s error = %v", caller.EmployeeID, err)
		}
	}

	// A caller with no stake in the request cannot read it by id.
	_, err := svc.GetRequest(ctx, id, common_models.CallerContext{EmployeeID: "E099"})
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("unrelated GetRequest() error = %v, want AuthorizationError", err)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	tests := []struct {
		name    string
		request *ApprovalRequest
	}{
		{
			name:    "unknown request type",
			request: &ApprovalRequest{RequestType: "vacation"},
		},
		{
			name: "chain levels not strictly increasing",
			request: &ApprovalRequest{
				RequestType: RequestTypeLeave,
				ApprovalChain: []ApprovalChainStep{
					{Level: 2, ApproverEmployeeID: "M001", Status: StepStatusPending},
					{Level: 2, ApproverEmployeeID: "M002", Status: StepStatusPending},
				},
			},
		},
		{
			name: "pre-decided step",
			request: &ApprovalRequest{
				RequestType: RequestTypeLeave,
				ApprovalChain: []ApprovalChainStep{
					{Level: 2, ApproverEmployeeID: "M001", Status: StepStatusApproved},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateRequest(ctx, tt.request)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
		})
	}
}

func TestGetAllRequestsVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newFakeApprovalRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	mine := twoStepRequest(t, repo)
	other := &ApprovalRequest{
		RequestType:  RequestTypeOvertime,
		EmployeeID:   "E002",
		EmployeeName: "Tomas",
		ApprovalChain: []ApprovalChainStep{
			{ID: "s1", Level: 2, ApproverEmployeeID: "M005", Status: StepStatusPending},
		},
	}
	if err := svc.CreateRequest(ctx, other); err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	// Requester sees own requests only.
	own, err := svc.GetAllRequests(ctx, common_models.CallerContext{EmployeeID: "E001"})
	if err != nil {
		t.Fatalf("GetAllRequests() error = %v", err)
	}
	if len(own) != 1 || own[0].ID != mine.ID {
		t.Errorf("requester visibility = %d requests, want exactly their own", len(own))
	}

	// Approver sees requests waiting on them.
	waiting, err := svc.GetAllRequests(ctx, common_models.CallerContext{EmployeeID: "M005", Permissions: []string{PermApprove}})
	if err != nil {
		t.Fatalf("GetAllRequests() error = %v", err)
	}
	if len(waiting) != 1 || waiting[0].ID != other.ID {
		t.Errorf("approver visibility = %d requests, want the one waiting on them", len(waiting))
	}

	// HR sees everything.
	all, err := svc.GetAllRequests(ctx, common_models.CallerContext{EmployeeID: "HR01", Permissions: []string{PermViewAll}})
	if err != nil {
		t.Fatalf("GetAllRequests() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("HR visibility = %d requests, want 2", len(all))
	}
}
