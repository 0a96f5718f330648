package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/notify/domain"
	"pomoterm/internal/modules/notify/dto"
	notifyout "pomoterm/internal/modules/notify/port/out"
)

// NotifyService fans notifications out to every channel. A broken channel
// is reported in the delivery list, never surfaced as an error, so a missing
// notification daemon or a bad plugin can't break a finished interval.
type NotifyService struct {
	store   notifyout.ManifestStore
	host    notifyout.Host
	desktop notifyout.DesktopNotifier
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host, desktop notifyout.DesktopNotifier) *NotifyService {
	return &NotifyService{store: store, host: host, desktop: desktop}
}

func (s *NotifyService) Send(ctx context.Context, notification domain.Notification) ([]domain.Delivery, error) {
	if err := notification.Validate(); err != nil {
		return nil, err
	}

	deliveries := []domain.Delivery{s.sendDesktop(ctx, notification)}

	manifests, err := s.store.Load(ctx)
	if err != nil {
		deliveries = append(deliveries, domain.Delivery{
			Target: "plugins",
			Error:  fmt.Sprintf("load manifests: %v", err),
		})
		return deliveries, nil
	}
	for _, manifest := range manifests {
		if !manifest.Enabled {
			continue
		}
		deliveries = append(deliveries, s.sendPlugin(ctx, manifest, notification))
	}
	return deliveries, nil
}

func (s *NotifyService) sendDesktop(ctx context.Context, notification domain.Notification) domain.Delivery {
	delivery := domain.Delivery{Target: domain.DesktopTarget}
	if s.desktop == nil {
		delivery.Error = "desktop channel unavailable"
		return delivery
	}
	if err := s.desktop.Notify(ctx, notification.Title, notification.Body); err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	delivery.Delivered = true
	return delivery
}

func (s *NotifyService) sendPlugin(ctx context.Context, manifest domain.Manifest, notification domain.Notification) domain.Delivery {
	delivery := domain.Delivery{Target: manifest.Name}
	if err := manifest.Validate(); err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		delivery.Error = err.Error()
		return delivery
	}
	if err := s.host.Deliver(ctx, manifest, notification); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			delivery.Error = fmt.Sprintf("%v: %s", domain.ErrPluginTimeout, manifest.Name)
		} else {
			delivery.Error = err.Error()
		}
		return delivery
	}
	delivery.Delivered = true
	return delivery
}

func (s *NotifyService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Binary: m.Binary, Enabled: m.Enabled})
	}
	return out, nil
}

// Doctor reports per-plugin health: manifest validity, binary presence,
// checksum, and whether the plugin answers the lifecycle probe.
func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		if result.BinaryReachable && result.ChecksumValid && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if result.BinaryReachable && !result.ChecksumValid {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seen[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
