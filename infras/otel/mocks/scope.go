package mocks

import "turfbook/infras/otel"

type nopScope struct{}

func (nopScope) End() {}
func (nopScope) TraceError(error) {}
func (nopScope) TraceIfError(*error) {}
func (nopScope) AddEvent(string) {}
func (nopScope) SetAttribute(string, any) {}
func (nopScope) SetAttributes(map[string]any) {}

func NewScope() otel.Scope {
	return nopScope{}
}
