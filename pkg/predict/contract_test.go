package predict_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
)

func TestDefaultContractMatchesDefaultFields(t *testing.T) {
	contract, err := predict.DefaultContract(context.Background())
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if err := contract.CheckFields(model.DefaultFields()); err != nil {
		t.Fatalf("check fields: %v", err)
	}
	if contract.Title() != "Heart Disease ML API" {
		t.Fatalf("unexpected title %q", contract.Title())
	}

	want := []string{"age", "blood_pressure", "chest_pain", "cholesterol", "max_hr", "sex", "st_depression"}
	if diff := cmp.Diff(want, contract.RequestProperties()); diff != "" {
		t.Fatalf("request properties mismatch (-want +got):\n%s", diff)
	}
}

func TestContractCheckFieldsReportsMismatch(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /predict:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                age: {type: number}
                weight: {type: number}
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema: {type: object}
`
	contract, err := predict.LoadContract(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	err = contract.CheckFields(model.DefaultFields())
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	for _, want := range []string{"not in request schema: sex", "not collected by the form: weight"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestLoadContractRequiresPredictOperation(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /health:
    get:
      responses:
        '200': {description: ok}
`
	if _, err := predict.LoadContract(context.Background(), []byte(doc)); err == nil {
		t.Fatalf("expected error for missing POST /predict")
	}
}

func TestContractValidateResult(t *testing.T) {
	contract, err := predict.DefaultContract(context.Background())
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if err := contract.ValidateResult([]byte(`{"prediction":0,"probability":0.25,"risk_level":"Low Risk"}`)); err != nil {
		t.Fatalf("expected valid result: %v", err)
	}
	if err := contract.ValidateResult([]byte(`{"prediction":0}`)); err == nil {
		t.Fatalf("expected missing properties to fail")
	}
	if err := contract.ValidateResult([]byte(`{"prediction":1,"probability":0.9}`)); err != nil {
		t.Fatalf("expected risk_level to be optional: %v", err)
	}
	if err := contract.ValidateResult([]byte(`{"prediction":2,"probability":0.9}`)); err == nil {
		t.Fatalf("expected out of range prediction to fail")
	}
}
