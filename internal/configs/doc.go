// Package configs manages user configuration and store settings for QMOI.
//
// Configuration is stored in TOML format at the user level:
//
//   - User config: <UserConfigDir>/qmoi/config.toml (workstation identity)
//
// The workstation UUID is auto-generated on first use and identifies this
// machine in audit log entries. No secret material is ever stored in the
// config file.
//
// # Settings
//
// Global settings are initialized at startup:
//   - UserQmoiSettings: path to the user config directory
//   - StoreQmoiSettings: location of the .qmoi secret store, resolved by
//     InitStoreSettings (walks up from the working directory so commands
//     work from subdirectories)
package configs
