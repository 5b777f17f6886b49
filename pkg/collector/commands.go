// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package collector

import (
	"github.com/mchmarny/winspect/pkg/category"
)

// commands maps each category to its PowerShell pipelines, tried in
// order until one produces parseable JSON. Fallbacks trade detail for
// availability: CIM and WMI queries work on hosts where the newer
// cmdlets are missing or require elevation.
var commands = map[category.Category][]string{
	category.Network: {
		`@{
			adapters = @(Get-NetAdapter | Select-Object Name, InterfaceDescription, Status, MacAddress, LinkSpeed);
			ip_config = @(Get-NetIPConfiguration | Select-Object InterfaceAlias, IPv4Address, IPv4DefaultGateway);
			dns = @(Get-DnsClientServerAddress -AddressFamily IPv4 | Select-Object InterfaceAlias, ServerAddresses);
			connections = @(Get-NetTCPConnection -State Established | Select-Object LocalAddress, LocalPort, RemoteAddress, RemotePort, OwningProcess)
		} | ConvertTo-Json -Depth 5`,
		`@{
			adapters = @(Get-WmiObject Win32_NetworkAdapterConfiguration -Filter 'IPEnabled=true' | Select-Object Description, MACAddress, IPAddress, DefaultIPGateway, DNSServerSearchOrder)
		} | ConvertTo-Json -Depth 4`,
	},
	category.InstalledPrograms: {
		`Get-ItemProperty HKLM:\Software\Microsoft\Windows\CurrentVersion\Uninstall\*, HKLM:\Software\Wow6432Node\Microsoft\Windows\CurrentVersion\Uninstall\* |
			Where-Object { $_.DisplayName } |
			Select-Object DisplayName, DisplayVersion, Publisher, InstallDate, EstimatedSize |
			ConvertTo-Json -Depth 3`,
		`Get-WmiObject Win32_Product | Select-Object Name, Version, Vendor, InstallDate | ConvertTo-Json -Depth 3`,
	},
	category.Services: {
		`Get-Service | Select-Object Name, DisplayName, @{n='Status';e={$_.Status.ToString()}}, @{n='StartType';e={$_.StartType.ToString()}} | ConvertTo-Json -Depth 3`,
		`Get-WmiObject Win32_Service | Select-Object Name, DisplayName, State, StartMode | ConvertTo-Json -Depth 3`,
	},
	category.Drivers: {
		`Get-WmiObject Win32_PnPSignedDriver | Select-Object DeviceName, DriverVersion, DriverDate, Manufacturer, IsSigned | ConvertTo-Json -Depth 3`,
		`driverquery /fo csv /v | ConvertFrom-Csv | ConvertTo-Json -Depth 3`,
	},
	category.DiskSpace: {
		`Get-CimInstance Win32_LogicalDisk -Filter 'DriveType=3' | Select-Object DeviceID, VolumeName, Size, FreeSpace, FileSystem | ConvertTo-Json -Depth 3`,
		`Get-WmiObject Win32_LogicalDisk -Filter 'DriveType=3' | Select-Object DeviceID, VolumeName, Size, FreeSpace | ConvertTo-Json -Depth 3`,
	},
	category.StartupPrograms: {
		`Get-CimInstance Win32_StartupCommand | Select-Object Name, Command, Location, User | ConvertTo-Json -Depth 3`,
		`Get-ItemProperty HKLM:\Software\Microsoft\Windows\CurrentVersion\Run, HKCU:\Software\Microsoft\Windows\CurrentVersion\Run | ConvertTo-Json -Depth 3`,
	},
	category.RunningProcesses: {
		`Get-Process | Select-Object Name, Id, @{n='WorkingSet';e={$_.WorkingSet64}}, @{n='CPU';e={$_.CPU}} | ConvertTo-Json -Depth 3`,
		`Get-WmiObject Win32_Process | Select-Object Name, ProcessId, WorkingSetSize | ConvertTo-Json -Depth 3`,
	},
	category.ScheduledTasks: {
		`Get-ScheduledTask | Select-Object TaskName, TaskPath, @{n='State';e={$_.State.ToString()}} | ConvertTo-Json -Depth 3`,
		`schtasks /query /fo csv | ConvertFrom-Csv | ConvertTo-Json -Depth 3`,
	},
	category.WindowsUpdates: {
		`Get-HotFix | Select-Object HotFixID, Description, @{n='InstalledOn';e={if ($_.InstalledOn) {$_.InstalledOn.ToString('yyyy-MM-dd')}}} | ConvertTo-Json -Depth 3`,
		`Get-WmiObject Win32_QuickFixEngineering | Select-Object HotFixID, Description, InstalledOn | ConvertTo-Json -Depth 3`,
	},
	category.EnvironmentVariables: {
		`Get-ChildItem Env: | Select-Object Name, Value | ConvertTo-Json -Depth 2`,
	},
	category.HardwareInfo: {
		`@{
			system = Get-CimInstance Win32_ComputerSystem | Select-Object Manufacturer, Model, TotalPhysicalMemory, NumberOfLogicalProcessors;
			cpu = Get-CimInstance Win32_Processor | Select-Object Name, MaxClockSpeed, NumberOfCores;
			bios = Get-CimInstance Win32_BIOS | Select-Object Manufacturer, SMBIOSBIOSVersion, ReleaseDate;
			gpu = @(Get-CimInstance Win32_VideoController | Select-Object Name, DriverVersion, AdapterRAM)
		} | ConvertTo-Json -Depth 4`,
		`Get-WmiObject Win32_ComputerSystem | Select-Object Manufacturer, Model, TotalPhysicalMemory | ConvertTo-Json -Depth 3`,
	},
	category.Performance: {
		`@{
			CPULoadPercent = (Get-CimInstance Win32_Processor | Measure-Object -Property LoadPercentage -Average).Average;
			TotalMemory = (Get-CimInstance Win32_OperatingSystem).TotalVisibleMemorySize;
			AvailableMemory = (Get-CimInstance Win32_OperatingSystem).FreePhysicalMemory;
			Uptime = ((Get-Date) - (Get-CimInstance Win32_OperatingSystem).LastBootUpTime).ToString()
		} | ConvertTo-Json -Depth 3`,
	},
	category.RegistrySettings: {
		`@{
			explorer = Get-ItemProperty 'HKCU:\Software\Microsoft\Windows\CurrentVersion\Explorer\Advanced' -ErrorAction SilentlyContinue;
			power = Get-ItemProperty 'HKLM:\SYSTEM\CurrentControlSet\Control\Power' -ErrorAction SilentlyContinue;
			memoryManagement = Get-ItemProperty 'HKLM:\SYSTEM\CurrentControlSet\Control\Session Manager\Memory Management' -ErrorAction SilentlyContinue
		} | ConvertTo-Json -Depth 3`,
	},
	category.EventLogs: {
		`Get-WinEvent -FilterHashtable @{LogName='System'; Level=1,2,3} -MaxEvents 50 |
			Select-Object @{n='Level';e={$_.LevelDisplayName}}, ProviderName, Id, @{n='Time';e={$_.TimeCreated.ToString('o')}}, Message |
			ConvertTo-Json -Depth 3`,
		`Get-EventLog -LogName System -EntryType Error,Warning -Newest 50 | Select-Object EntryType, Source, EventID, TimeGenerated, Message | ConvertTo-Json -Depth 3`,
	},
}

// secretPatterns lists key patterns dropped from collected objects
// before anything is written to disk or shown to a model.
var secretPatterns = []string{
	"*password*",
	"*secret*",
	"*token*",
	"*apikey*",
	"*api_key*",
	"*credential*",
	"*connectionstring*",
}
