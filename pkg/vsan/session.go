// Copyright 2023 Huawei Cloud Computing Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vsan

import (
	"context"
	"net"
	"net/url"
	"strconv"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/property"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
	govsan "github.com/vmware/govmomi/vsan"
	"go.uber.org/zap"
)

var (
	errNS = errorx.NewNamespace("vsan")
	// ErrConnect means the management server could not be reached or refused the login
	ErrConnect = errNS.NewType("connect_failed", utils.ErrTraitPreCheck)
	// ErrClusterNotFound means no datacenter holds a cluster with the given name
	ErrClusterNotFound = errNS.NewType("cluster_not_found", utils.ErrTraitPreCheck)
	// ErrCallFailed means a call to the management API returned a fault
	ErrCallFailed = errNS.NewType("call_failed")
	// ErrTaskFailed means a remote task reached the error state
	ErrTaskFailed = errNS.NewType("task_failed")
)

// Config is where and how to log in.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	// Insecure skips verification of the server certificate and host name
	Insecure bool
}

// URL returns the SDK endpoint of the server, credentials included.
func (c Config) URL() (*url.URL, error) {
	u, err := soap.ParseURL(net.JoinHostPort(c.Host, strconv.Itoa(c.Port)))
	if err != nil {
		return nil, err
	}
	u.User = url.UserPassword(c.User, c.Password)
	return u, nil
}

// retrieveFunc loads properties ps of the objects refs into dst.
type retrieveFunc func(ctx context.Context, refs []types.ManagedObjectReference, ps []string, dst any) error

// Session is an authenticated connection to vCenter and its vSAN service.
// It implements spec.ClusterAPI.
type Session struct {
	vim  *vim25.Client
	vsan *govsan.Client

	retrieve retrieveFunc
	logout   func(ctx context.Context) error
}

// Connect logs in to the server described by cfg.
func Connect(ctx context.Context, cfg Config) (*Session, error) {
	u, err := cfg.URL()
	if err != nil {
		return nil, ErrConnect.Wrap(err, "Invalid server address %s", cfg.Host).
			WithProperty(utils.ErrPropSuggestion, "Pass the vCenter host name or IP with -s/--host")
	}

	zap.L().Debug("connecting", zap.String("host", cfg.Host), zap.Int("port", cfg.Port),
		zap.String("user", cfg.User), zap.Bool("insecure", cfg.Insecure))
	c, err := govmomi.NewClient(ctx, u, cfg.Insecure)
	if err != nil {
		return nil, ErrConnect.Wrap(err, "Failed to log in to %s as %s", u.Host, cfg.User).
			WithProperty(utils.ErrPropSuggestion, "Check the host, port, user and password")
	}

	s, err := NewSession(ctx, c.Client)
	if err != nil {
		_ = c.Logout(context.WithoutCancel(ctx))
		return nil, err
	}
	s.logout = c.Logout
	return s, nil
}

// NewSession wraps an already authenticated client.
func NewSession(ctx context.Context, c *vim25.Client) (*Session, error) {
	vc, err := govsan.NewClient(ctx, c)
	if err != nil {
		return nil, ErrConnect.Wrap(err, "Failed to open the vSAN management service")
	}
	return &Session{
		vim:      c,
		vsan:     vc,
		retrieve: property.DefaultCollector(c).Retrieve,
	}, nil
}

// Close logs out, a session built by NewSession is left open.
func (s *Session) Close(ctx context.Context) error {
	if s.logout == nil {
		return nil
	}
	err := s.logout(ctx)
	s.logout = nil
	return err
}
