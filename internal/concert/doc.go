// Package concert defines the canonical concert record that every source
// normalizes into, along with the shared normalization rules: London
// wall-clock to UTC conversion, pence-denominated price ranges, and
// deterministic identifier assignment.
package concert
