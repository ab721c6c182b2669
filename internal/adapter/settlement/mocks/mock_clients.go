//	mockgen -source=internal/adapter/settlement/settlement.go -destination=internal/adapter/settlement/mocks/mock_clients.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	settlement "github.com/iho/payrails/internal/adapter/settlement"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockInterbankClient is a mock of InterbankClient interface.
type MockInterbankClient struct {
	ctrl     *gomock.Controller
	recorder *MockInterbankClientMockRecorder
	isgomock struct{}
}

// MockInterbankClientMockRecorder is the mock recorder for MockInterbankClient.
type MockInterbankClientMockRecorder struct {
	mock *MockInterbankClient
}

// NewMockInterbankClient creates a new mock instance.
func NewMockInterbankClient(ctrl *gomock.Controller) *MockInterbankClient {
	mock := &MockInterbankClient{ctrl: ctrl}
	mock.recorder = &MockInterbankClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInterbankClient) EXPECT() *MockInterbankClientMockRecorder {
	return m.recorder
}

// PushFunds mocks base method.
func (m *MockInterbankClient) PushFunds(ctx context.Context, req settlement.PushRequest) (settlement.PushResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PushFunds", ctx, req)
	ret0, _ := ret[0].(settlement.PushResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PushFunds indicates an expected call of PushFunds.
func (mr *MockInterbankClientMockRecorder) PushFunds(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PushFunds", reflect.TypeOf((*MockInterbankClient)(nil).PushFunds), ctx, req)
}

// QueryTransfer mocks base method.
func (m *MockInterbankClient) QueryTransfer(ctx context.Context, reference string) (settlement.PushResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "QueryTransfer", ctx, reference)
	ret0, _ := ret[0].(settlement.PushResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// QueryTransfer indicates an expected call of QueryTransfer.
func (mr *MockInterbankClientMockRecorder) QueryTransfer(ctx, reference any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "QueryTransfer", reflect.TypeOf((*MockInterbankClient)(nil).QueryTransfer), ctx, reference)
}

// VerifyAccount mocks base method.
func (m *MockInterbankClient) VerifyAccount(ctx context.Context, accountNumber, routingCode string) (settlement.NameEnquiry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifyAccount", ctx, accountNumber, routingCode)
	ret0, _ := ret[0].(settlement.NameEnquiry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// VerifyAccount indicates an expected call of VerifyAccount.
func (mr *MockInterbankClientMockRecorder) VerifyAccount(ctx, accountNumber, routingCode any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifyAccount", reflect.TypeOf((*MockInterbankClient)(nil).VerifyAccount), ctx, accountNumber, routingCode)
}

// MockCrossBorderClient is a mock of CrossBorderClient interface.
type MockCrossBorderClient struct {
	ctrl     *gomock.Controller
	recorder *MockCrossBorderClientMockRecorder
	isgomock struct{}
}

// MockCrossBorderClientMockRecorder is the mock recorder for MockCrossBorderClient.
type MockCrossBorderClientMockRecorder struct {
	mock *MockCrossBorderClient
}

// NewMockCrossBorderClient creates a new mock instance.
func NewMockCrossBorderClient(ctrl *gomock.Controller) *MockCrossBorderClient {
	mock := &MockCrossBorderClient{ctrl: ctrl}
	mock.recorder = &MockCrossBorderClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCrossBorderClient) EXPECT() *MockCrossBorderClientMockRecorder {
	return m.recorder
}

// ComplianceCheck mocks base method.
func (m *MockCrossBorderClient) ComplianceCheck(ctx context.Context, req settlement.ComplianceRequest) (settlement.ComplianceResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ComplianceCheck", ctx, req)
	ret0, _ := ret[0].(settlement.ComplianceResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ComplianceCheck indicates an expected call of ComplianceCheck.
func (mr *MockCrossBorderClientMockRecorder) ComplianceCheck(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ComplianceCheck", reflect.TypeOf((*MockCrossBorderClient)(nil).ComplianceCheck), ctx, req)
}

// FXRate mocks base method.
func (m *MockCrossBorderClient) FXRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FXRate", ctx, from, to)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FXRate indicates an expected call of FXRate.
func (mr *MockCrossBorderClientMockRecorder) FXRate(ctx, from, to any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FXRate", reflect.TypeOf((*MockCrossBorderClient)(nil).FXRate), ctx, from, to)
}

// QueryWire mocks base method.
func (m *MockCrossBorderClient) QueryWire(ctx context.Context, messageRef string) (settlement.WireResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "QueryWire", ctx, messageRef)
	ret0, _ := ret[0].(settlement.WireResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// QueryWire indicates an expected call of QueryWire.
func (mr *MockCrossBorderClientMockRecorder) QueryWire(ctx, messageRef any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "QueryWire", reflect.TypeOf((*MockCrossBorderClient)(nil).QueryWire), ctx, messageRef)
}

// SendWire mocks base method.
func (m *MockCrossBorderClient) SendWire(ctx context.Context, req settlement.WireRequest) (settlement.WireResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendWire", ctx, req)
	ret0, _ := ret[0].(settlement.WireResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendWire indicates an expected call of SendWire.
func (mr *MockCrossBorderClientMockRecorder) SendWire(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendWire", reflect.TypeOf((*MockCrossBorderClient)(nil).SendWire), ctx, req)
}

// MockBillerClient is a mock of BillerClient interface.
type MockBillerClient struct {
	ctrl     *gomock.Controller
	recorder *MockBillerClientMockRecorder
	isgomock struct{}
}

// MockBillerClientMockRecorder is the mock recorder for MockBillerClient.
type MockBillerClientMockRecorder struct {
	mock *MockBillerClient
}

// NewMockBillerClient creates a new mock instance.
func NewMockBillerClient(ctrl *gomock.Controller) *MockBillerClient {
	mock := &MockBillerClient{ctrl: ctrl}
	mock.recorder = &MockBillerClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBillerClient) EXPECT() *MockBillerClientMockRecorder {
	return m.recorder
}

// Pay mocks base method.
func (m *MockBillerClient) Pay(ctx context.Context, req settlement.BillPaymentRequest) (settlement.BillPaymentResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Pay", ctx, req)
	ret0, _ := ret[0].(settlement.BillPaymentResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Pay indicates an expected call of Pay.
func (mr *MockBillerClientMockRecorder) Pay(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Pay", reflect.TypeOf((*MockBillerClient)(nil).Pay), ctx, req)
}

// ValidateCustomer mocks base method.
func (m *MockBillerClient) ValidateCustomer(ctx context.Context, billerID, customerRef string) (settlement.CustomerValidation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateCustomer", ctx, billerID, customerRef)
	ret0, _ := ret[0].(settlement.CustomerValidation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ValidateCustomer indicates an expected call of ValidateCustomer.
func (mr *MockBillerClientMockRecorder) ValidateCustomer(ctx, billerID, customerRef any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateCustomer", reflect.TypeOf((*MockBillerClient)(nil).ValidateCustomer), ctx, billerID, customerRef)
}
