package axisconfig

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load([]byte(`{"axes":{"x":{"step_pin":"gpio0","dir_pin":"gpio1"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Kinematics != "cartesian" {
		t.Errorf("expected default kinematics cartesian, got %v", cfg.Kinematics)
	}
	if cfg.DeltaTime != 0.01 {
		t.Errorf("expected default delta_time 0.01, got %v", cfg.DeltaTime)
	}
	x := cfg.Axes["x"]
	if x.StepsPerMM != 80.0 || x.MaxVelocity != 300.0 {
		t.Errorf("expected default axis limits to be applied, got %+v", x)
	}
}

func TestLoadPreservesExplicitValues(t *testing.T) {
	cfg, err := Load([]byte(`{"delta_time":0.005,"axes":{"z":{"step_pin":"gpio4","dir_pin":"gpio5","max_velocity":10}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DeltaTime != 0.005 {
		t.Errorf("expected explicit delta_time to be preserved, got %v", cfg.DeltaTime)
	}
	if cfg.Axes["z"].MaxVelocity != 10 {
		t.Errorf("expected explicit max_velocity to be preserved, got %v", cfg.Axes["z"].MaxVelocity)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Errorf("expected an error for malformed JSON")
	}
}

func TestDefaultCartesianConfigHasFourAxes(t *testing.T) {
	cfg := DefaultCartesianConfig()
	for _, name := range []string{"x", "y", "z", "e"} {
		if _, ok := cfg.Axes[name]; !ok {
			t.Errorf("expected default config to include axis %q", name)
		}
	}
}
