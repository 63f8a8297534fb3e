package resource

import (
	"testing"

	"facturo/internal/domain/plan"
)

func TestType_LimitKey(t *testing.T) {
	tests := []struct {
		resourceType Type
		want         plan.LimitKey
	}{
		{TypeEstablishment, plan.LimitMaxEstablishments},
		{TypeEmissionPoint, plan.LimitMaxEmissionPoints},
		{TypeWarehouse, plan.LimitMaxWarehouses},
		{TypeSeller, plan.LimitMaxSellers},
		{TypeContact, plan.LimitMaxTotalUsers},
	}

	for _, tt := range tests {
		t.Run(tt.resourceType.String(), func(t *testing.T) {
			if got := tt.resourceType.LimitKey(); got != tt.want {
				t.Errorf("LimitKey() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("warehouse"); err != nil {
		t.Errorf("ParseType(warehouse) error = %v", err)
	}
	if _, err := ParseType("invoice"); err == nil {
		t.Error("ParseType must reject unknown types")
	}
}

func TestNewResource_DefaultsActive(t *testing.T) {
	r, err := NewResource(1, TypeEstablishment, "Matriz", "001")
	if err != nil {
		t.Fatalf("NewResource() error = %v", err)
	}
	if !r.IsActive() {
		t.Error("new resource must be active by default")
	}
}

func TestNewResource_Validation(t *testing.T) {
	if _, err := NewResource(0, TypeEstablishment, "Matriz", ""); err == nil {
		t.Error("zero company ID must be rejected")
	}
	if _, err := NewResource(1, Type("bogus"), "Matriz", ""); err == nil {
		t.Error("invalid type must be rejected")
	}
	if _, err := NewResource(1, TypeContact, "", ""); err == nil {
		t.Error("empty name must be rejected")
	}
}

func TestResource_DeactivateReactivate(t *testing.T) {
	r, _ := NewResource(1, TypeWarehouse, "Bodega Norte", "")

	if err := r.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if r.IsActive() {
		t.Error("resource still active after Deactivate")
	}
	if err := r.Deactivate(); err != ErrResourceInactive {
		t.Errorf("second Deactivate() error = %v, want ErrResourceInactive", err)
	}

	if err := r.Reactivate(); err != nil {
		t.Fatalf("Reactivate() error = %v", err)
	}
	if !r.IsActive() {
		t.Error("resource inactive after Reactivate")
	}
	if err := r.Reactivate(); err != ErrResourceAlreadyActive {
		t.Errorf("second Reactivate() error = %v, want ErrResourceAlreadyActive", err)
	}
}
