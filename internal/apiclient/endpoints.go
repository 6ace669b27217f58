package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/phillip-england/shipdesk/internal/model"
)

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

// auth

func (c *Client) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.Do(ctx, http.MethodPost, "/api/auth/login", model.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// companies

func (c *Client) Companies(ctx context.Context) ([]model.Company, error) {
	var out []model.Company
	err := c.Do(ctx, http.MethodGet, "/api/companies", nil, &out)
	return out, err
}

func (c *Client) Company(ctx context.Context, companyID int64) (*model.Company, error) {
	var out model.Company
	if err := c.Do(ctx, http.MethodGet, "/api/companies/"+id(companyID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCompany(ctx context.Context, req model.CompanyRequest) (*model.Company, error) {
	var out model.Company
	if err := c.Do(ctx, http.MethodPost, "/api/companies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCompany(ctx context.Context, companyID int64, req model.CompanyRequest) (*model.Company, error) {
	var out model.Company
	if err := c.Do(ctx, http.MethodPut, "/api/companies/"+id(companyID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCompany(ctx context.Context, companyID int64) error {
	return c.Do(ctx, http.MethodDelete, "/api/companies/"+id(companyID), nil, nil)
}

// offices

func (c *Client) Offices(ctx context.Context) ([]model.Office, error) {
	var out []model.Office
	err := c.Do(ctx, http.MethodGet, "/api/offices", nil, &out)
	return out, err
}

func (c *Client) Office(ctx context.Context, officeID int64) (*model.Office, error) {
	var out model.Office
	if err := c.Do(ctx, http.MethodGet, "/api/offices/"+id(officeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OfficesByCompany(ctx context.Context, companyID int64) ([]model.Office, error) {
	var out []model.Office
	err := c.Do(ctx, http.MethodGet, "/api/offices/company/"+id(companyID), nil, &out)
	return out, err
}

func (c *Client) CreateOffice(ctx context.Context, req model.OfficeRequest) (*model.Office, error) {
	var out model.Office
	if err := c.Do(ctx, http.MethodPost, "/api/offices", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOffice(ctx context.Context, officeID int64, req model.OfficeRequest) (*model.Office, error) {
	var out model.Office
	if err := c.Do(ctx, http.MethodPut, "/api/offices/"+id(officeID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOffice(ctx context.Context, officeID int64) error {
	return c.Do(ctx, http.MethodDelete, "/api/offices/"+id(officeID), nil, nil)
}

// employees

func (c *Client) Employees(ctx context.Context) ([]model.Employee, error) {
	var out []model.Employee
	err := c.Do(ctx, http.MethodGet, "/api/employees", nil, &out)
	return out, err
}

func (c *Client) Employee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	var out model.Employee
	if err := c.Do(ctx, http.MethodGet, "/api/employees/"+id(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	var out model.Employee
	if err := c.Do(ctx, http.MethodPost, "/api/employees", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, employeeID int64, req model.EmployeeRequest) (*model.Employee, error) {
	var out model.Employee
	if err := c.Do(ctx, http.MethodPut, "/api/employees/"+id(employeeID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID int64) error {
	return c.Do(ctx, http.MethodDelete, "/api/employees/"+id(employeeID), nil, nil)
}

// customers

func (c *Client) Customers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := c.Do(ctx, http.MethodGet, "/api/customers", nil, &out)
	return out, err
}

func (c *Client) Customer(ctx context.Context, customerID int64) (*model.Customer, error) {
	var out model.Customer
	if err := c.Do(ctx, http.MethodGet, "/api/customers/"+id(customerID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CustomerByUser(ctx context.Context, userID int64) (*model.Customer, error) {
	var out model.Customer
	if err := c.Do(ctx, http.MethodGet, "/api/customers/user/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req model.CustomerRequest) (*model.Customer, error) {
	var out model.Customer
	if err := c.Do(ctx, http.MethodPost, "/api/customers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, customerID int64, req model.CustomerRequest) (*model.Customer, error) {
	var out model.Customer
	if err := c.Do(ctx, http.MethodPut, "/api/customers/"+id(customerID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, customerID int64) error {
	return c.Do(ctx, http.MethodDelete, "/api/customers/"+id(customerID), nil, nil)
}

// shipments

func (c *Client) Shipments(ctx context.Context) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/shipments", nil, &out)
	return out, err
}

func (c *Client) Shipment(ctx context.Context, shipmentID int64) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.Do(ctx, http.MethodGet, "/api/shipments/"+id(shipmentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateShipment(ctx context.Context, req model.ShipmentRequest) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.Do(ctx, http.MethodPost, "/api/shipments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShipment(ctx context.Context, shipmentID int64, req model.ShipmentRequest) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.Do(ctx, http.MethodPut, "/api/shipments/"+id(shipmentID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShipmentStatus(ctx context.Context, shipmentID int64, status model.ShipmentStatus) (*model.Shipment, error) {
	var out model.Shipment
	err := c.Do(ctx, http.MethodPatch, "/api/shipments/"+id(shipmentID)+"/status", model.StatusUpdateRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteShipment(ctx context.Context, shipmentID int64) error {
	return c.Do(ctx, http.MethodDelete, "/api/shipments/"+id(shipmentID), nil, nil)
}

// reports

func (c *Client) ReportEmployees(ctx context.Context) ([]model.Employee, error) {
	var out []model.Employee
	err := c.Do(ctx, http.MethodGet, "/api/reports/employees", nil, &out)
	return out, err
}

func (c *Client) ReportCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := c.Do(ctx, http.MethodGet, "/api/reports/customers", nil, &out)
	return out, err
}

func (c *Client) ReportShipments(ctx context.Context) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/reports/shipments", nil, &out)
	return out, err
}

func (c *Client) PendingShipments(ctx context.Context) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/reports/shipments/pending", nil, &out)
	return out, err
}

func (c *Client) ShipmentsByEmployee(ctx context.Context, employeeID int64) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/reports/shipments/employee/"+id(employeeID), nil, &out)
	return out, err
}

func (c *Client) SentByCustomer(ctx context.Context, customerID int64) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/reports/shipments/customer/"+id(customerID)+"/sent", nil, &out)
	return out, err
}

func (c *Client) ReceivedByCustomer(ctx context.Context, customerID int64) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.Do(ctx, http.MethodGet, "/api/reports/shipments/customer/"+id(customerID)+"/received", nil, &out)
	return out, err
}

// Revenue dates are ISO calendar dates (YYYY-MM-DD).
func (c *Client) Revenue(ctx context.Context, startDate, endDate string) (*model.Revenue, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	var out model.Revenue
	if err := c.Do(ctx, http.MethodGet, "/api/reports/revenue?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardMetrics(ctx context.Context) (*model.DashboardMetrics, error) {
	var out model.DashboardMetrics
	if err := c.Do(ctx, http.MethodGet, "/api/reports/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CustomerMetrics(ctx context.Context) (*model.CustomerMetrics, error) {
	var out model.CustomerMetrics
	if err := c.Do(ctx, http.MethodGet, "/api/reports/customer-metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// pricing

func (c *Client) PricingInfo(ctx context.Context) (*model.PricingInfo, error) {
	var out model.PricingInfo
	if err := c.Do(ctx, http.MethodGet, "/api/pricing", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PricingConfig(ctx context.Context) (*model.PricingConfig, error) {
	var out model.PricingConfig
	if err := c.Do(ctx, http.MethodGet, "/api/pricing/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePricingConfig(ctx context.Context, req model.PricingConfigRequest) (*model.PricingConfig, error) {
	var out model.PricingConfig
	if err := c.Do(ctx, http.MethodPut, "/api/pricing/config", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
