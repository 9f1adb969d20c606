package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
	"github.com/companycore/management-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub project repository
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("p%d", r.nextID)
	r.projects[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.AssignedEmployeeID != "" && !p.IsAssigned(f.AssignedEmployeeID) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if _, ok := r.projects[p.ID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	r.projects[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

var (
	adminID    = auth.Identity{SubjectID: "admin1", Role: domain.RoleAdmin, Name: "Admin"}
	employeeID = auth.Identity{SubjectID: "emp1", Role: domain.RoleEmployee, Name: "Eve"}
	clientID   = auth.Identity{SubjectID: "cli1", Role: domain.RoleClient, Name: "Carl"}
)

func newProjectService() (*ProjectService, *stubProjectRepo) {
	repo := newStubProjectRepo()
	return NewProjectService(repo, zerolog.Nop()), repo
}

func mustCreateProject(t *testing.T, svc *ProjectService, input ports.CreateProjectInput) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), adminID, input)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// CRUD + policy
// ---------------------------------------------------------------------------

func TestProjectService_Create_AdminOnly(t *testing.T) {
	svc, _ := newProjectService()
	input := ports.CreateProjectInput{Name: "Site", ClientID: "cli1"}

	if _, err := svc.Create(context.Background(), employeeID, input); err != domain.ErrForbidden {
		t.Fatalf("employee create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(context.Background(), clientID, input); err != domain.ErrForbidden {
		t.Fatalf("client create: expected ErrForbidden, got %v", err)
	}

	p, err := svc.Create(context.Background(), adminID, input)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if p.Status != domain.ProjectNotStarted || p.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestProjectService_Get_Visibility(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1"})
	ctx := context.Background()

	if _, err := svc.Get(ctx, adminID, p.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if _, err := svc.Get(ctx, clientID, p.ID); err != nil {
		t.Fatalf("owning client get: %v", err)
	}
	other := auth.Identity{SubjectID: "cli2", Role: domain.RoleClient}
	if _, err := svc.Get(ctx, other, p.ID); err != domain.ErrForbidden {
		t.Fatalf("other client get: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, employeeID, p.ID); err != domain.ErrForbidden {
		t.Fatalf("unassigned employee get: expected ErrForbidden, got %v", err)
	}
}

// Scenario from the policy table: an unassigned employee cannot move status;
// after assignment the same request succeeds.
func TestProjectService_EmployeeStatusUpdate_RequiresAssignment(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1"})
	ctx := context.Background()

	completed := domain.ProjectCompleted
	if _, err := svc.Update(ctx, employeeID, p.ID, ports.UpdateProjectInput{Status: &completed}); err != domain.ErrForbidden {
		t.Fatalf("unassigned update: expected ErrForbidden, got %v", err)
	}

	if _, err := svc.Assign(ctx, adminID, p.ID, []string{employeeID.SubjectID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, err := svc.Update(ctx, employeeID, p.ID, ports.UpdateProjectInput{Status: &completed})
	if err != nil {
		t.Fatalf("assigned update: %v", err)
	}
	if updated.Status != domain.ProjectCompleted {
		t.Fatalf("status: got %s", updated.Status)
	}
}

func TestProjectService_EmployeeCannotTouchOtherFields(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1"})
	ctx := context.Background()

	if _, err := svc.Assign(ctx, adminID, p.ID, []string{employeeID.SubjectID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	name := "hijacked"
	// A name-only update from an employee carries no status and is rejected.
	if _, err := svc.Update(ctx, employeeID, p.ID, ports.UpdateProjectInput{Name: &name}); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	got, err := svc.Get(ctx, adminID, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Site" {
		t.Fatalf("name should be unchanged, got %q", got.Name)
	}
}

func TestProjectService_List_ScopedByRole(t *testing.T) {
	svc, _ := newProjectService()
	ctx := context.Background()

	p1 := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "A", ClientID: "cli1"})
	mustCreateProject(t, svc, ports.CreateProjectInput{Name: "B", ClientID: "cli2"})
	if _, err := svc.Assign(ctx, adminID, p1.ID, []string{employeeID.SubjectID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	all, err := svc.List(ctx, adminID)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin list: %v, n=%d", err, len(all))
	}
	mine, err := svc.List(ctx, clientID)
	if err != nil || len(mine) != 1 || mine[0].ClientID != "cli1" {
		t.Fatalf("client list: %v, %+v", err, mine)
	}
	assigned, err := svc.List(ctx, employeeID)
	if err != nil || len(assigned) != 1 || assigned[0].ID != p1.ID {
		t.Fatalf("employee list: %v, %+v", err, assigned)
	}
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

// Scenario: totalAmount=1000; 400 paid -> partially_paid; 600 more -> paid.
func TestProjectService_PaymentStatusDerivation(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1", TotalAmount: 1000})
	ctx := context.Background()

	after400, err := svc.AddPayment(ctx, adminID, p.ID, ports.PaymentInput{Amount: 400})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if after400.AmountPaid != 400 || after400.PaymentStatus != domain.PaymentPartiallyPaid {
		t.Fatalf("after 400: paid=%v status=%s", after400.AmountPaid, after400.PaymentStatus)
	}

	after1000, err := svc.AddPayment(ctx, adminID, p.ID, ports.PaymentInput{Amount: 600})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if after1000.AmountPaid != 1000 || after1000.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("after 1000: paid=%v status=%s", after1000.AmountPaid, after1000.PaymentStatus)
	}
	if len(after1000.PaymentHistory) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(after1000.PaymentHistory))
	}
}

// Projects opened from free catalog services carry totalAmount=0; any
// recorded payment settles them rather than leaving them partially paid.
func TestProjectService_AddPayment_ZeroTotalSettles(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Audit", ClientID: "cli1"})

	got, err := svc.AddPayment(context.Background(), adminID, p.ID, ports.PaymentInput{Amount: 100})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if got.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected paid, got %s", got.PaymentStatus)
	}
	if got.BalanceDue() != 0 {
		t.Fatalf("expected no balance due, got %v", got.BalanceDue())
	}
}

func TestProjectService_AddPayment_AdminOnly(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1", TotalAmount: 100})

	if _, err := svc.AddPayment(context.Background(), clientID, p.ID, ports.PaymentInput{Amount: 50}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_AddPayment_UpdatesTotal(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1"})

	total := 500.0
	got, err := svc.AddPayment(context.Background(), adminID, p.ID, ports.PaymentInput{Amount: 500, TotalAmount: &total})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if got.TotalAmount != 500 || got.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("got total=%v status=%s", got.TotalAmount, got.PaymentStatus)
	}
}

func TestProjectService_PaymentOrderAndVerify(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1", TotalAmount: 250})
	ctx := context.Background()

	order, err := svc.CreatePaymentOrder(ctx, clientID, p.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.AmountDue != 25000 || order.Status != "created" {
		t.Fatalf("unexpected order: %+v", order)
	}

	paid, err := svc.VerifyPayment(ctx, clientID, p.ID, ports.VerifyPaymentInput{OrderID: order.ID, Amount: 250})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("status after verify: %s", paid.PaymentStatus)
	}

	// Fully paid project has no balance left to order against.
	if _, err := svc.CreatePaymentOrder(ctx, clientID, p.ID); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation on zero balance, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

func TestProjectService_AttachFiles(t *testing.T) {
	svc, _ := newProjectService()
	p := mustCreateProject(t, svc, ports.CreateProjectInput{Name: "Site", ClientID: "cli1"})
	ctx := context.Background()

	files := []ports.FileInput{{Filename: "spec.pdf", URL: "https://files.local/spec.pdf"}}

	if _, err := svc.AttachFiles(ctx, clientID, p.ID, files); err != domain.ErrForbidden {
		t.Fatalf("client attach: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.AttachFiles(ctx, employeeID, p.ID, files); err != domain.ErrForbidden {
		t.Fatalf("unassigned employee attach: expected ErrForbidden, got %v", err)
	}

	got, err := svc.AttachFiles(ctx, adminID, p.ID, files)
	if err != nil {
		t.Fatalf("admin attach: %v", err)
	}
	if len(got.Files) != 1 || got.Files[0].UploadedBy != adminID.SubjectID {
		t.Fatalf("unexpected files: %+v", got.Files)
	}
}
